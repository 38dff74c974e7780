package retry

import (
	"context"
	"time"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// Executor retries failed operations with backoff. Every call this tool
// makes against the resource index and Fedora is an idempotent read, so a
// transient failure can always be retried without side effects.
//
// An Executor is safe for concurrent use. WithOnRetry returns a configured
// copy, so callers sharing a base executor attach their own reporting
// without racing on the original.
type Executor struct {
	classifier exodus.ErrorClassifier
	strategy   exodus.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. Both collaborators are required.
func NewExecutor(classifier exodus.ErrorClassifier, strategy exodus.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("retry: nil classifier")
	}
	if strategy == nil {
		panic("retry: nil strategy")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of the executor that reports each retry
// through callback before sleeping. The receiver is unchanged.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs op, retrying transient failures until the strategy's
// attempt budget is spent. The initial call is not counted: MaxAttempts
// bounds retries, so a budget of 2 allows up to 3 calls. A negative budget
// retries until the context is cancelled. Fatal errors return immediately;
// on exhaustion the last error is returned.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if max := e.strategy.MaxAttempts(); max >= 0 && attempt >= max {
			break
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
