package fetcher

import "errors"

// Fetch failure classes. Callers that surface these to users should map
// them onto their own taxonomy; within this package they distinguish
// rejected input from transport and extraction failures.
var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrPrivateAddress   = errors.New("url resolves to a private address")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrNoContent        = errors.New("no readable content")
)
