package tokenchannel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tokenchannel/tokenchannel-go/pkg/httpclient"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.tokenchannel.io"

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "TokenChannel/Go"
)

// Config holds the client settings. All fields are read at construction and
// never mutated afterwards, so a Client is safe for concurrent use.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL overrides the API origin; defaults to DefaultBaseURL.
	BaseURL string
	// TestMode forces test: true on every challenge created by this client.
	TestMode bool
	// Timeout bounds each request; defaults to 30 seconds.
	Timeout time.Duration
	// Transport overrides the resty-backed default transport.
	Transport httpclient.Client
	// Logger receives debug-level request traces; defaults to a nop logger.
	Logger *zap.SugaredLogger
}

// Client issues requests against the TokenChannel API. Every operation is a
// single stateless request/response exchange; the client keeps no per-call
// state and applies the same error classification to every endpoint.
type Client struct {
	cfg  Config
	http httpclient.Client
	log  *zap.SugaredLogger
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("tokenchannel: api key is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = httpclient.NewRestyClient(cfg.Timeout)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	return &Client{cfg: cfg, http: cfg.Transport, log: cfg.Logger}, nil
}

// Challenge creates a challenge: generates a token and delivers it over the
// given channel to the given identifier. When the client is in test mode the
// transmitted options always carry test: true; the caller's options value is
// never modified.
func (c *Client) Challenge(ctx context.Context, channel ChannelType, identifier string, options *ChallengeOptions) (*ChallengeResponse, error) {
	if c.cfg.TestMode {
		forced := ChallengeOptions{}
		if options != nil {
			forced = *options
		}
		forced.Test = true
		options = &forced
	}

	body := []byte("{}")
	if options != nil {
		encoded, err := json.Marshal(options)
		if err != nil {
			return nil, fmt.Errorf("%w: encode options: %w", ErrUnexpectedResponse, err)
		}
		body = encoded
	}

	path := fmt.Sprintf("/challenge/%s/%s", channel, escapePathSegment(identifier))
	var out ChallengeResponse
	if err := c.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticate verifies a previously created challenge with the code the
// target received.
func (c *Client) Authenticate(ctx context.Context, requestID, authCode string) (*AuthenticateResponse, error) {
	path := fmt.Sprintf("/authenticate/%s/%s", escapePathSegment(requestID), escapePathSegment(authCode))
	var out AuthenticateResponse
	if err := c.post(ctx, path, []byte("{}"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetValidationCodeByTestChallengeID retrieves the validation code of a
// challenge that was created with test mode enabled.
func (c *Client) GetValidationCodeByTestChallengeID(ctx context.Context, requestID string) (*TestResponse, error) {
	var out TestResponse
	if err := c.get(ctx, "/test/"+escapePathSegment(requestID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSupportedCountries retrieves the countries the service is available in.
func (c *Client) GetSupportedCountries(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/countries", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSupportedLanguages retrieves the locales available for the token
// notification templates.
func (c *Client) GetSupportedLanguages(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/languages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSMSPrices retrieves the SMS pricing list for supported countries.
func (c *Client) GetSMSPrices(ctx context.Context) ([]SMSPriceItem, error) {
	var out []SMSPriceItem
	if err := c.get(ctx, "/pricing/sms", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVoicePrices retrieves the voice call pricing list for supported countries.
func (c *Client) GetVoicePrices(ctx context.Context) ([]VoicePriceItem, error) {
	var out []VoicePriceItem
	if err := c.get(ctx, "/pricing/voice", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWhatsappPrices retrieves the WhatsApp pricing list for supported countries.
func (c *Client) GetWhatsappPrices(ctx context.Context) ([]WhatsappPriceItem, error) {
	var out []WhatsappPriceItem
	if err := c.get(ctx, "/pricing/whatsapp", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	fullURL := c.cfg.BaseURL + path
	c.log.Debugw("tokenchannel request", "method", http.MethodGet, "url", fullURL)

	resp, err := c.http.Get(ctx, fullURL, c.headers(false))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return c.decode(resp, out)
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	fullURL := c.cfg.BaseURL + path
	c.log.Debugw("tokenchannel request", "method", http.MethodPost, "url", fullURL)

	resp, err := c.http.Post(ctx, fullURL, c.headers(true), body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return c.decode(resp, out)
}

func (c *Client) decode(resp httpclient.Response, out any) error {
	if resp.StatusCode() != http.StatusOK {
		err := classify(resp.StatusCode(), resp.Body())
		c.log.Debugw("tokenchannel error response", "status", resp.StatusCode(), "error", err)
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode body: %w", ErrUnexpectedResponse, err)
	}
	return nil
}

func (c *Client) headers(post bool) map[string]string {
	h := map[string]string{
		"X-Api-Key":  c.cfg.APIKey,
		"User-Agent": userAgent,
		"Accept":     "application/json; utf-8",
	}
	if post {
		h["Content-Type"] = "application/json"
	}
	return h
}

// escapePathSegment percent-encodes a path segment. url.PathEscape leaves '+'
// literal, but the API decodes path segments with '+' treated as a reserved
// character, so it must travel as %2B.
func escapePathSegment(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), "+", "%2B")
}
