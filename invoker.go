package textops

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/pipz"
)

// SleepFunc waits for the given duration unless the context is canceled
// first. Injectable so tests can observe backoff delays without real waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy controls the invoker's attempt ceiling and backoff schedule.
// The delay before retry n (counting from 0) is BaseDelay * 2^n.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       SleepFunc // nil means a real context-aware sleep
}

// DefaultRetryPolicy matches the documented behavior: 3 attempts, exponential
// backoff starting at 1s. The base delay is a project decision; the upstream
// service does not mandate one.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultRetryPolicy.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	return p
}

// Invoker sends one logical request through the pipeline, retrying transient
// failures with exponential backoff. Terminal failures abort after a single
// attempt. No state is kept between attempts beyond the counter and the last
// error, and every attempt issues a fresh outbound call.
type Invoker struct {
	pipeline pipz.Chainable[*CallRequest]
	policy   RetryPolicy
}

// NewInvoker wraps a pipeline with the given retry policy.
func NewInvoker(pipeline pipz.Chainable[*CallRequest], policy RetryPolicy) *Invoker {
	return &Invoker{pipeline: pipeline, policy: policy.normalized()}
}

// Send runs the pipeline until it succeeds, fails terminally, or the attempt
// ceiling is reached. Cancellation is honored before each retry wait.
func (in *Invoker) Send(ctx context.Context, req *CallRequest) (*CallRequest, error) {
	var last error

	for attempt := 0; attempt < in.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := in.policy.BaseDelay << (attempt - 1)
			capitan.Info(ctx, CallRetrying,
				RequestIDKey.Field(req.RequestID),
				OperationKey.Field(string(req.Operation)),
				AttemptKey.Field(attempt+1),
				DelayMsKey.Field(int(delay.Milliseconds())),
				ErrorKey.Field(last.Error()),
			)
			if err := in.policy.Sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		processed, err := in.pipeline.Process(ctx, req)
		if err == nil {
			return processed, nil
		}
		last = err

		if IsTerminal(err) {
			return nil, err
		}
	}

	return nil, &ExhaustedError{Attempts: in.policy.MaxAttempts, Last: last}
}
