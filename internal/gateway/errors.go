package gateway

import (
	"errors"
	"fmt"
)

// The provider error code contract. These codes come back from the Netgsm
// endpoints as bare numeric strings and must be kept exactly as documented.
const (
	ProviderCodeMessageText        = 20 // message text error (too long / invalid characters)
	ProviderCodeInvalidCredentials = 30 // invalid credentials or insufficient API access
	ProviderCodeHeaderNotRegistred = 40 // sender header not registered
	ProviderCodeInvalidDestination = 50 // invalid destination number
	ProviderCodeHeaderNotApproved  = 51 // sender header approval pending
	ProviderCodeInvalidJobId       = 60 // invalid job id
	ProviderCodeInvalidParameters  = 70 // invalid parameters
	ProviderCodeDailyLimit         = 80 // daily send limit exceeded
	ProviderCodeDuplicateLimit     = 85 // duplicate-send limit exceeded (>20 to same number within 1 minute)
)

var providerErrorTexts = map[int]string{
	ProviderCodeMessageText:        "message text error or exceeds character limit",
	ProviderCodeInvalidCredentials: "invalid credentials or insufficient API access",
	ProviderCodeHeaderNotRegistred: "sender header not registered",
	ProviderCodeInvalidDestination: "invalid recipient number",
	ProviderCodeHeaderNotApproved:  "sender header not approved or approval pending",
	ProviderCodeInvalidJobId:       "invalid job id",
	ProviderCodeInvalidParameters:  "invalid parameters",
	ProviderCodeDailyLimit:         "daily sending limit exceeded",
	ProviderCodeDuplicateLimit:     "duplicate sending limit exceeded",
}

// ProviderError is a terminal rejection from the SMS provider. It is never
// retried here, the caller decides on the user facing behavior.
type ProviderError struct {
	Code int
}

func (e *ProviderError) Error() string {
	text, ok := providerErrorTexts[e.Code]
	if !ok {
		text = "unknown provider error"
	}
	return fmt.Sprintf("sms provider error %d: %s", e.Code, text)
}

func NewProviderError(code int) *ProviderError {
	return &ProviderError{Code: code}
}

func AsProviderError(err error) (*ProviderError, bool) {
	var pErr *ProviderError
	ok := errors.As(err, &pErr)
	return pErr, ok
}

var (
	errEmptyProviderResponse     = errors.New("empty response body from the sms provider")
	errMalformedProviderResponse = errors.New("malformed response body from the sms provider")
)

// TransportError means we never got a usable answer from the provider,
// network failure, timeout, or a broken response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sms provider transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	ok := errors.As(err, &tErr)
	return tErr, ok
}
