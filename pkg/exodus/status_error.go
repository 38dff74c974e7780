package exodus

import "fmt"

// StatusError reports a non-success HTTP response from the resource index or
// the object repository. Callers classify retryability by status code.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
