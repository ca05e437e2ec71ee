package summarizer

import (
	"context"

	"golang.org/x/time/rate"
)

// apiLimiter is a token-bucket limiter shared by every invocation against
// a hosted backend. The underlying inference service is a single shared
// resource; concurrent chunk summarizations must not overwhelm it.
type apiLimiter struct {
	limiter *rate.Limiter
}

// newAPILimiter creates a limiter with the given sustained rate and burst.
func newAPILimiter(requestsPerSecond float64, burst int) *apiLimiter {
	return &apiLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// wait blocks until a token is available or the context is done.
func (l *apiLimiter) wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
