package tokenchannel

import "context"

// Result carries the single outcome of an asynchronous call: the value on
// success, or the classified error.
type Result[T any] struct {
	Value T
	Err   error
}

// call runs fn in its own goroutine and returns a channel that delivers
// exactly one Result and is then closed. The channel is buffered, so the
// goroutine never blocks on a caller that abandons the handle.
func call[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		value, err := fn()
		ch <- Result[T]{Value: value, Err: err}
		close(ch)
	}()
	return ch
}

// ChallengeAsync is the non-blocking form of Challenge.
func (c *Client) ChallengeAsync(ctx context.Context, channel ChannelType, identifier string, options *ChallengeOptions) <-chan Result[*ChallengeResponse] {
	return call(func() (*ChallengeResponse, error) {
		return c.Challenge(ctx, channel, identifier, options)
	})
}

// AuthenticateAsync is the non-blocking form of Authenticate.
func (c *Client) AuthenticateAsync(ctx context.Context, requestID, authCode string) <-chan Result[*AuthenticateResponse] {
	return call(func() (*AuthenticateResponse, error) {
		return c.Authenticate(ctx, requestID, authCode)
	})
}

// GetValidationCodeByTestChallengeIDAsync is the non-blocking form of
// GetValidationCodeByTestChallengeID.
func (c *Client) GetValidationCodeByTestChallengeIDAsync(ctx context.Context, requestID string) <-chan Result[*TestResponse] {
	return call(func() (*TestResponse, error) {
		return c.GetValidationCodeByTestChallengeID(ctx, requestID)
	})
}

// GetSupportedCountriesAsync is the non-blocking form of GetSupportedCountries.
func (c *Client) GetSupportedCountriesAsync(ctx context.Context) <-chan Result[[]string] {
	return call(func() ([]string, error) {
		return c.GetSupportedCountries(ctx)
	})
}

// GetSupportedLanguagesAsync is the non-blocking form of GetSupportedLanguages.
func (c *Client) GetSupportedLanguagesAsync(ctx context.Context) <-chan Result[[]string] {
	return call(func() ([]string, error) {
		return c.GetSupportedLanguages(ctx)
	})
}

// GetSMSPricesAsync is the non-blocking form of GetSMSPrices.
func (c *Client) GetSMSPricesAsync(ctx context.Context) <-chan Result[[]SMSPriceItem] {
	return call(func() ([]SMSPriceItem, error) {
		return c.GetSMSPrices(ctx)
	})
}

// GetVoicePricesAsync is the non-blocking form of GetVoicePrices.
func (c *Client) GetVoicePricesAsync(ctx context.Context) <-chan Result[[]VoicePriceItem] {
	return call(func() ([]VoicePriceItem, error) {
		return c.GetVoicePrices(ctx)
	})
}

// GetWhatsappPricesAsync is the non-blocking form of GetWhatsappPrices.
func (c *Client) GetWhatsappPricesAsync(ctx context.Context) <-chan Result[[]WhatsappPriceItem] {
	return call(func() ([]WhatsappPriceItem, error) {
		return c.GetWhatsappPrices(ctx)
	})
}
