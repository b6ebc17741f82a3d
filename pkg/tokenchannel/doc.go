// Package tokenchannel is a client for the TokenChannel challenge API:
// one-time token delivery over SMS, voice, WhatsApp, Telegram and email,
// code verification, and pricing/metadata lookups.
//
// Failures map to a closed set of sentinel errors; check them with errors.Is:
//
//	_, err := client.Authenticate(ctx, requestID, code)
//	if errors.Is(err, tokenchannel.ErrInvalidCode) {
//	    // wrong code, more attempts may remain
//	}
//
// A Client is safe for concurrent use. Every operation has an Async variant
// returning a channel that delivers exactly one Result.
package tokenchannel
