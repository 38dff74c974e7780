// Package retry provides automatic retry logic with exponential backoff
// for transient failures of read-only HTTP queries.
//
// The package supports pluggable error classification and backoff strategies.
// Only idempotent operations should be executed through it; the resource
// index and Fedora reads qualify, writes do not.
//
// # Example Usage
//
//	classifier := retry.NewHTTPErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return queryIndex(ctx)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
