package exodus

import "time"

// ErrorClassifier separates transient failures, worth retrying, from fatal
// ones. For this tool the split is network errors and 5xx responses versus
// everything else: the index and Fedora are only ever read, so retrying is
// always safe.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy paces retries.
type BackoffStrategy interface {
	// NextDelay returns how long to sleep before retry number attempt,
	// counted from zero.
	NextDelay(attempt int) time.Duration

	// MaxAttempts bounds retries after the initial call. Zero disables
	// retrying; a negative value means retry until the context ends.
	MaxAttempts() int
}
