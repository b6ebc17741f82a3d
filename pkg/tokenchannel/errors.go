package tokenchannel

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// The API reports failures through a closed set of conditions. Each condition
// is a sentinel usable with errors.Is; the two conditions that carry a
// service-supplied payload (InvalidIdentifier, BadRequest) are typed errors
// that unwrap to their sentinel.
var (
	ErrInvalidCode         = errors.New("tokenchannel: invalid validation code")
	ErrInvalidIdentifier   = errors.New("tokenchannel: invalid identifier for channel")
	ErrTargetOptOut        = errors.New("tokenchannel: target opted out of this channel")
	ErrBadRequest          = errors.New("tokenchannel: bad request")
	ErrChallengeClosed     = errors.New("tokenchannel: challenge is closed")
	ErrChallengeExpired    = errors.New("tokenchannel: challenge validity is over")
	ErrChallengeNotFound   = errors.New("tokenchannel: challenge not found")
	ErrMaxAttemptsExceeded = errors.New("tokenchannel: max authentication attempts exceeded")
	ErrUnauthorized        = errors.New("tokenchannel: invalid api key")
	ErrOutOfBalance        = errors.New("tokenchannel: not enough balance")
	ErrForbidden           = errors.New("tokenchannel: action not allowed for api key")
	ErrQuotaExceeded       = errors.New("tokenchannel: quota exceeded")
	ErrUnexpectedResponse  = errors.New("tokenchannel: unexpected response")
)

// FieldError is one entry of ErrorInfo.Details, describing a single invalid
// value in the request.
type FieldError struct {
	Target  string `json:"target"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorInfo is the structured body of a non-2xx response. Code is a
// service-defined string from a small closed set; Message is a developer aid,
// not suitable for end-user display.
type ErrorInfo struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details"`
}

// InvalidIdentifierError reports that the identifier is not valid for the
// requested channel, with the service-supplied explanation.
type InvalidIdentifierError struct {
	Message string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidIdentifier, e.Message)
}

func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// BadRequestError reports an invalid request value; Info carries the full
// structured detail list from the service.
type BadRequestError struct {
	Info ErrorInfo
}

func (e *BadRequestError) Error() string {
	if e.Info.Message != "" {
		return fmt.Sprintf("%v: %s", ErrBadRequest, e.Info.Message)
	}
	return ErrBadRequest.Error()
}

func (e *BadRequestError) Unwrap() error { return ErrBadRequest }

// Error code strings discriminating 400 and 404 responses.
const (
	codeInvalidCode         = "InvalidCode"
	codeInvalidIdentifier   = "InvalidIdentifier"
	codeOptOut              = "OptOut"
	codeChallengeExpired    = "ChallengeExpired"
	codeChallengeClosed     = "ChallengeClosed"
	codeMaxAttemptsExceeded = "MaxAttemptsExceeded"
)

// classify maps an error status and body to the matching condition. The table
// is shared by every operation; the service does not restrict which codes an
// endpoint may return. Unrecognized statuses, and 400/404 bodies with
// unrecognized codes, fall through to the generic conditions.
func classify(status int, body []byte) error {
	switch status {
	case http.StatusBadRequest:
		info := decodeErrorInfo(body)
		switch info.Code {
		case codeInvalidCode:
			return ErrInvalidCode
		case codeInvalidIdentifier:
			return &InvalidIdentifierError{Message: info.Message}
		case codeOptOut:
			return ErrTargetOptOut
		}
		return &BadRequestError{Info: info}
	case http.StatusNotFound:
		info := decodeErrorInfo(body)
		switch info.Code {
		case codeChallengeExpired:
			return ErrChallengeExpired
		case codeChallengeClosed:
			return ErrChallengeClosed
		case codeMaxAttemptsExceeded:
			return ErrMaxAttemptsExceeded
		}
		return ErrChallengeNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPaymentRequired:
		return ErrOutOfBalance
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrQuotaExceeded
	}
	return fmt.Errorf("%w: status %d", ErrUnexpectedResponse, status)
}

// decodeErrorInfo tolerates malformed error bodies: an undecodable body yields
// a zero ErrorInfo, which classify resolves to the status' generic condition.
func decodeErrorInfo(body []byte) ErrorInfo {
	var info ErrorInfo
	_ = json.Unmarshal(body, &info)
	return info
}
