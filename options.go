package textops

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/pipz"
)

// Option modifies a call pipeline for reliability features. Retry and backoff
// are not options: that policy is classification-aware and belongs to the
// Invoker.
type Option func(pipz.Chainable[*CallRequest]) pipz.Chainable[*CallRequest]

// WithTimeout adds per-attempt timeout protection to the pipeline.
// Attempts exceeding this duration are canceled.
func WithTimeout(duration time.Duration) Option {
	return func(pipeline pipz.Chainable[*CallRequest]) pipz.Chainable[*CallRequest] {
		return pipz.NewTimeout("timeout", pipeline, duration)
	}
}

// WithRateLimit adds rate limiting to the pipeline.
// rps = requests per second, burst = burst capacity.
func WithRateLimit(rps float64, burst int) Option {
	return func(pipeline pipz.Chainable[*CallRequest]) pipz.Chainable[*CallRequest] {
		rateLimiter := pipz.NewRateLimiter[*CallRequest]("rate-limit", rps, burst)
		return pipz.NewSequence("rate-limited", rateLimiter, pipeline)
	}
}

// WithErrorHandler adds error handling to the pipeline.
// The handler receives error context and can process/log/alert as needed.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*CallRequest]]) Option {
	return func(pipeline pipz.Chainable[*CallRequest]) pipz.Chainable[*CallRequest] {
		return pipz.NewHandle("error-handler", pipeline, handler)
	}
}

// WithDebug prints the rendered envelope and raw response around each call.
// Useful for troubleshooting what the model actually sees and returns.
func WithDebug() Option {
	return func(pipeline pipz.Chainable[*CallRequest]) pipz.Chainable[*CallRequest] {
		return pipz.Apply("debug", func(ctx context.Context, req *CallRequest) (*CallRequest, error) {
			fmt.Println("\n=== DEBUG: System ===")
			fmt.Println(req.Envelope.System)
			fmt.Println("\n=== DEBUG: User ===")
			fmt.Println(req.Envelope.User)
			fmt.Println("=====================")

			processed, err := pipeline.Process(ctx, req)
			if err != nil {
				fmt.Printf("\n=== DEBUG: Error ===\n%v\n====================\n\n", err)
				return processed, err
			}

			fmt.Println("\n=== DEBUG: Raw Response ===")
			fmt.Println(processed.Response)
			fmt.Println("===========================")

			return processed, nil
		})
	}
}
