package tokenchannel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.Handler, testMode bool) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{APIKey: "tk-test-key", BaseURL: srv.URL, TestMode: testMode})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{APIKey: "  "}); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestChallengeRequestShape(t *testing.T) {
	var gotPath, gotBody, gotAPIKey, gotAccept, gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.EscapedPath()
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"requestId":"ch_123"}`))
	}), false)

	resp, err := client.Challenge(context.Background(), ChannelSMS, "+15551234567", nil)
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if resp.RequestID != "ch_123" {
		t.Fatalf("requestId = %q, want ch_123", resp.RequestID)
	}
	if gotPath != "/challenge/sms/%2B15551234567" {
		t.Fatalf("path = %q, want /challenge/sms/%%2B15551234567", gotPath)
	}
	if gotBody != "{}" {
		t.Fatalf("body = %q, want {}", gotBody)
	}
	if gotAPIKey != "tk-test-key" {
		t.Fatalf("X-Api-Key = %q", gotAPIKey)
	}
	if gotAccept != "application/json; utf-8" {
		t.Fatalf("Accept = %q", gotAccept)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
}

func TestChallengeIdentifierEncodingRoundTrip(t *testing.T) {
	// Reserved characters must survive the path segment unambiguously.
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"requestId":"ch_1"}`))
	}), false)

	if _, err := client.Challenge(context.Background(), ChannelEmail, "a+b/c d@example.com", nil); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if gotPath != "/challenge/email/a%2Bb%2Fc%20d@example.com" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestChallengeTestModeForcesTestFlag(t *testing.T) {
	var gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"requestId":"ch_1"}`))
	}), true)

	// Nil options: the transmitted body still carries test: true.
	if _, err := client.Challenge(context.Background(), ChannelSMS, "+15551234567", nil); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if gotBody != `{"test":true}` {
		t.Fatalf("body = %q, want {\"test\":true}", gotBody)
	}

	// Explicit options: test is forced without mutating the caller's value.
	opts := &ChallengeOptions{Language: "es", CodeLength: 8}
	if _, err := client.Challenge(context.Background(), ChannelSMS, "+15551234567", opts); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if gotBody != `{"language":"es","codeLength":8,"test":true}` {
		t.Fatalf("body = %q", gotBody)
	}
	if opts.Test {
		t.Fatalf("caller options were mutated")
	}
}

func TestChallengeInvalidIdentifier(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"InvalidIdentifier","message":"bad number"}`))
	}), false)

	_, err := client.Challenge(context.Background(), ChannelSMS, "nope", nil)
	var invalid *InvalidIdentifierError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidIdentifierError, got %v", err)
	}
	if invalid.Message != "bad number" {
		t.Fatalf("message = %q", invalid.Message)
	}
}

func TestAuthenticate(t *testing.T) {
	var gotPath, gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"validated":true}`))
	}), false)

	resp, err := client.Authenticate(context.Background(), "ch_123", "481516")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !resp.Validated {
		t.Fatalf("validated = false, want true")
	}
	if gotPath != "/authenticate/ch_123/481516" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody != "{}" {
		t.Fatalf("body = %q, want {}", gotBody)
	}
}

func TestAuthenticateMaxAttemptsExceeded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"MaxAttemptsExceeded"}`))
	}), false)

	_, err := client.Authenticate(context.Background(), "ch_123", "000000")
	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Fatalf("err = %v, want ErrMaxAttemptsExceeded", err)
	}
}

func TestQuotaExceededIgnoresBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code":"InvalidCode","message":"irrelevant"}`))
	}), false)

	_, err := client.GetSupportedCountries(context.Background())
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestUnmappedStatusIsUnexpectedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), false)

	_, err := client.GetSupportedLanguages(context.Background())
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("err = %v, want ErrUnexpectedResponse", err)
	}
}

func TestMalformedSuccessBodyIsUnexpectedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"requestId":`))
	}), false)

	_, err := client.Challenge(context.Background(), ChannelSMS, "+15551234567", nil)
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("err = %v, want ErrUnexpectedResponse", err)
	}
}

func TestGetValidationCodeByTestChallengeID(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"validationCode":"481516"}`))
	}), false)

	resp, err := client.GetValidationCodeByTestChallengeID(context.Background(), "ch_123")
	if err != nil {
		t.Fatalf("GetValidationCodeByTestChallengeID: %v", err)
	}
	if resp.ValidationCode != "481516" {
		t.Fatalf("validationCode = %q", resp.ValidationCode)
	}
	if gotPath != "/test/ch_123" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestGetSupportedCountries(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["ES","FR","US"]`))
	}), false)

	countries, err := client.GetSupportedCountries(context.Background())
	if err != nil {
		t.Fatalf("GetSupportedCountries: %v", err)
	}
	if len(countries) != 3 || countries[0] != "ES" {
		t.Fatalf("countries = %v", countries)
	}
}

func TestGetSMSPricesKeepsDecimalExact(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"code":"US","country":"United States","price":0.05}]`))
	}), false)

	prices, err := client.GetSMSPrices(context.Background())
	if err != nil {
		t.Fatalf("GetSMSPrices: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("expected 1 price item, got %d", len(prices))
	}
	item := prices[0]
	if item.Code != "US" || item.Country != "United States" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if !item.Price.Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("price = %s, want exactly 0.05", item.Price)
	}
	if item.Price.String() != "0.05" {
		t.Fatalf("price string = %q, want 0.05", item.Price.String())
	}
}

func TestGetVoicePrices(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pricing/voice" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"code":"ES","country":"Spain","type":"mobile","price":0.031}]`))
	}), false)

	prices, err := client.GetVoicePrices(context.Background())
	if err != nil {
		t.Fatalf("GetVoicePrices: %v", err)
	}
	if len(prices) != 1 || prices[0].Type != "mobile" {
		t.Fatalf("prices = %+v", prices)
	}
}

func TestGetWhatsappPrices(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pricing/whatsapp" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"code":"BR","country":"Brazil","price":0.008}]`))
	}), false)

	prices, err := client.GetWhatsappPrices(context.Background())
	if err != nil {
		t.Fatalf("GetWhatsappPrices: %v", err)
	}
	if len(prices) != 1 || prices[0].Code != "BR" {
		t.Fatalf("prices = %+v", prices)
	}
}

func TestTransportFailureIsUnexpectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client, err := New(Config{APIKey: "tk-test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.GetSupportedCountries(context.Background()); !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("err = %v, want ErrUnexpectedResponse", err)
	}
}
