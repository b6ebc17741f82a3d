package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tokenchannel/tokenchannel-go/internal/cache"
	"github.com/tokenchannel/tokenchannel-go/internal/config"
	"github.com/tokenchannel/tokenchannel-go/pkg/tokenchannel"
)

// App wires together the API client and the reference-data cache and executes
// CLI subcommands.
type App struct {
	cfg    *config.Config
	client *tokenchannel.Client
	cache  cache.Cache
	log    *zap.SugaredLogger
	out    io.Writer
}

// NewApp builds the CLI runtime from config.
func NewApp(cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	client, err := tokenchannel.New(tokenchannel.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		TestMode: cfg.TestMode,
		Timeout:  cfg.RequestTimeout,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	refCache, err := cache.New(cfg.CacheType, cfg.CachePath, cache.Options{
		TTL:             cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("open reference cache: %w", err)
	}

	return &App{cfg: cfg, client: client, cache: refCache, log: log, out: os.Stdout}, nil
}

// Close releases the cache handle.
func (a *App) Close() error {
	if a == nil || a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// Run dispatches a subcommand with its arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n\n%s", Usage())
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "challenge":
		return a.runChallenge(ctx, rest)
	case "verify":
		return a.runVerify(ctx, rest)
	case "testcode":
		return a.runTestCode(ctx, rest)
	case "countries":
		return a.runCountries(ctx)
	case "languages":
		return a.runLanguages(ctx)
	case "pricing":
		return a.runPricing(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, Usage())
	}
}

// Usage returns the CLI help text.
func Usage() string {
	return `usage: tokenchannel <command> [args]

commands:
  challenge <channel> <identifier>   create a challenge and print its request id
  verify <requestId> <code>          authenticate a challenge with a validation code
  testcode <requestId>               fetch the code of a test-mode challenge
  countries                          list supported countries
  languages                          list supported template languages
  pricing <sms|voice|whatsapp>       list delivery rates per country`
}

func (a *App) runChallenge(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: challenge <channel> <identifier>")
	}
	channel, err := tokenchannel.ParseChannel(args[0])
	if err != nil {
		return err
	}

	resp, err := a.client.Challenge(ctx, channel, args[1], nil)
	if err != nil {
		return fmt.Errorf("create challenge: %w", err)
	}
	return a.printJSON(resp)
}

func (a *App) runVerify(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: verify <requestId> <code>")
	}

	resp, err := a.client.Authenticate(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("authenticate challenge: %w", err)
	}
	return a.printJSON(resp)
}

func (a *App) runTestCode(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: testcode <requestId>")
	}

	resp, err := a.client.GetValidationCodeByTestChallengeID(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch test code: %w", err)
	}
	return a.printJSON(resp)
}

func (a *App) runCountries(ctx context.Context) error {
	countries, err := lookup(a, ctx, "countries", a.client.GetSupportedCountries)
	if err != nil {
		return fmt.Errorf("list countries: %w", err)
	}
	return a.printJSON(countries)
}

func (a *App) runLanguages(ctx context.Context) error {
	languages, err := lookup(a, ctx, "languages", a.client.GetSupportedLanguages)
	if err != nil {
		return fmt.Errorf("list languages: %w", err)
	}
	return a.printJSON(languages)
}

func (a *App) runPricing(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pricing <sms|voice|whatsapp>")
	}

	switch args[0] {
	case "sms":
		prices, err := lookup(a, ctx, "pricing/sms", a.client.GetSMSPrices)
		if err != nil {
			return fmt.Errorf("list sms prices: %w", err)
		}
		return a.printJSON(prices)
	case "voice":
		prices, err := lookup(a, ctx, "pricing/voice", a.client.GetVoicePrices)
		if err != nil {
			return fmt.Errorf("list voice prices: %w", err)
		}
		return a.printJSON(prices)
	case "whatsapp":
		prices, err := lookup(a, ctx, "pricing/whatsapp", a.client.GetWhatsappPrices)
		if err != nil {
			return fmt.Errorf("list whatsapp prices: %w", err)
		}
		return a.printJSON(prices)
	default:
		return fmt.Errorf("unknown pricing channel %q (want sms, voice or whatsapp)", args[0])
	}
}

func (a *App) printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(a.out, string(encoded))
	return nil
}
