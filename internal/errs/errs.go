// Package errs defines the error kinds shared across the SDK's packages so
// callers can use errors.Is regardless of which package produced an error.
package errs

import "errors"

// These are the six error kinds from the protocol design: configuration,
// link/transport, protocol framing, dispatch, rate limiting, and capacity
// overflow. Each package wraps one of these with fmt.Errorf("...: %w", ...)
// rather than defining its own parallel sentinel.
var (
	ErrConfig     = errors.New("sinricpro: config error")
	ErrLink       = errors.New("sinricpro: link error")
	ErrProtocol   = errors.New("sinricpro: protocol error")
	ErrDispatch   = errors.New("sinricpro: dispatch error")
	ErrRateLimited = errors.New("sinricpro: rate limited")
	ErrOverflow   = errors.New("sinricpro: overflow")
)
