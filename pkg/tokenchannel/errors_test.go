package tokenchannel

import (
	"errors"
	"testing"
)

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"400 invalid code", 400, `{"code":"InvalidCode"}`, ErrInvalidCode},
		{"400 invalid identifier", 400, `{"code":"InvalidIdentifier","message":"bad number"}`, ErrInvalidIdentifier},
		{"400 opt out", 400, `{"code":"OptOut"}`, ErrTargetOptOut},
		{"400 other code", 400, `{"code":"InvalidLanguage","message":"nope"}`, ErrBadRequest},
		{"400 empty body", 400, ``, ErrBadRequest},
		{"404 expired", 404, `{"code":"ChallengeExpired"}`, ErrChallengeExpired},
		{"404 closed", 404, `{"code":"ChallengeClosed"}`, ErrChallengeClosed},
		{"404 max attempts", 404, `{"code":"MaxAttemptsExceeded"}`, ErrMaxAttemptsExceeded},
		{"404 other code", 404, `{"code":"SomethingElse"}`, ErrChallengeNotFound},
		{"404 empty body", 404, ``, ErrChallengeNotFound},
		{"401", 401, `{}`, ErrUnauthorized},
		{"402", 402, `{}`, ErrOutOfBalance},
		{"403", 403, `{}`, ErrForbidden},
		{"429", 429, `{"code":"whatever"}`, ErrQuotaExceeded},
		{"418 unmapped", 418, ``, ErrUnexpectedResponse},
		{"500 unmapped", 500, `{"code":"InvalidCode"}`, ErrUnexpectedResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.status, []byte(tc.body))
			if !errors.Is(got, tc.want) {
				t.Fatalf("classify(%d, %q) = %v, want %v", tc.status, tc.body, got, tc.want)
			}
		})
	}
}

func TestClassifyInvalidIdentifierCarriesMessage(t *testing.T) {
	err := classify(400, []byte(`{"code":"InvalidIdentifier","message":"bad number"}`))

	var invalid *InvalidIdentifierError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidIdentifierError, got %T (%v)", err, err)
	}
	if invalid.Message != "bad number" {
		t.Fatalf("message = %q, want %q", invalid.Message, "bad number")
	}
}

func TestClassifyBadRequestCarriesErrorInfo(t *testing.T) {
	body := `{"code":"InvalidValue","message":"validation failed","details":[{"target":"language","code":"Unsupported","message":"language xx is not supported"}]}`
	err := classify(400, []byte(body))

	var bad *BadRequestError
	if !errors.As(err, &bad) {
		t.Fatalf("expected *BadRequestError, got %T (%v)", err, err)
	}
	if bad.Info.Code != "InvalidValue" {
		t.Fatalf("code = %q, want InvalidValue", bad.Info.Code)
	}
	if len(bad.Info.Details) != 1 || bad.Info.Details[0].Target != "language" {
		t.Fatalf("unexpected details: %+v", bad.Info.Details)
	}
}

func TestClassifyMalformedErrorBodyFallsBack(t *testing.T) {
	if err := classify(400, []byte(`not json`)); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("400 malformed body = %v, want ErrBadRequest", err)
	}
	if err := classify(404, []byte(`not json`)); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("404 malformed body = %v, want ErrChallengeNotFound", err)
	}
}
