package exodus

// Logger is the logging surface the migration packages report through.
// Implementations must be safe for concurrent use: the index client logs
// retries from whatever goroutine the request runs on.
type Logger interface {
	// Verbose logs per-object diagnostics, shown only in verbose runs.
	Verbose(format string, args ...interface{})

	// Info logs run-level progress, always shown.
	Info(format string, args ...interface{})

	// Error logs failures and validation problems, always shown.
	Error(format string, args ...interface{})
}
