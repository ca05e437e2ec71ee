// Package resilience provides reliability patterns for calls that leave
// the process: circuit breakers and retry logic with exponential backoff.
//
// The package supports:
//   - Circuit breakers for external API calls (Claude, OpenAI, URL fetches)
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ClaudeAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
