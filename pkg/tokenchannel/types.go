package tokenchannel

import "github.com/shopspring/decimal"

// ChallengeOptions configures the challenge workflow. The zero value requests
// the service defaults for every field; omitted fields are not transmitted.
type ChallengeOptions struct {
	// Language selects the notification template locale (e.g. "en", "es").
	Language string `json:"language,omitempty"`
	// Charset selects the token alphabet (e.g. "DEC", "HEX", "UPPER").
	Charset string `json:"charset,omitempty"`
	// CodeLength is the number of characters in the generated token.
	CodeLength int `json:"codeLength,omitempty"`
	// Validity is the challenge lifetime in seconds.
	Validity int `json:"validity,omitempty"`
	// MaxAttempts limits how many authentication tries are accepted.
	MaxAttempts int `json:"maxAttempts,omitempty"`
	// Test skips real delivery and exposes the code via the test endpoint.
	Test bool `json:"test,omitempty"`
}

// ChallengeResponse is returned when a challenge is created. RequestID is the
// handle used by Authenticate and GetValidationCodeByTestChallengeID.
type ChallengeResponse struct {
	RequestID string `json:"requestId"`
}

// AuthenticateResponse is returned when a validation code is accepted.
type AuthenticateResponse struct {
	Validated bool `json:"validated"`
}

// TestResponse carries the validation code of a challenge created in test mode.
type TestResponse struct {
	ValidationCode string `json:"validationCode"`
}

// SMSPriceItem is the SMS delivery rate for one country.
type SMSPriceItem struct {
	Code    string          `json:"code"`
	Country string          `json:"country"`
	Price   decimal.Decimal `json:"price"`
}

// VoicePriceItem is the voice call rate for one country and number type.
type VoicePriceItem struct {
	Code    string          `json:"code"`
	Country string          `json:"country"`
	Type    string          `json:"type"`
	Price   decimal.Decimal `json:"price"`
}

// WhatsappPriceItem is the WhatsApp delivery rate for one country.
type WhatsappPriceItem struct {
	Code    string          `json:"code"`
	Country string          `json:"country"`
	Price   decimal.Decimal `json:"price"`
}
