package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// HTTPErrorClassifier implements exodus.ErrorClassifier for HTTP requests
// against the resource index and Fedora.
type HTTPErrorClassifier struct{}

// NewHTTPErrorClassifier creates a new HTTP error classifier.
func NewHTTPErrorClassifier() *HTTPErrorClassifier {
	return &HTTPErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *HTTPErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Caller cancellation is never retryable.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *exodus.StatusError
	if errors.As(err, &statusErr) {
		return c.isTransientStatus(statusErr.StatusCode)
	}

	if c.isNetworkError(err) {
		return true
	}

	return c.looksLikeConnectionError(err)
}

// isTransientStatus treats server-side failures and throttling as
// retryable; client errors are fatal.
func (c *HTTPErrorClassifier) isTransientStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}

// isNetworkError checks for network-level errors.
func (c *HTTPErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}
		if opErr.Err != nil {
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
				errors.Is(opErr.Err, syscall.ECONNRESET) ||
				errors.Is(opErr.Err, syscall.ENETUNREACH) ||
				errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// looksLikeConnectionError falls back to message matching for errors that
// lose their type through wrapping.
func (c *HTTPErrorClassifier) looksLikeConnectionError(err error) bool {
	message := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"unexpected eof",
		"context deadline exceeded",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}
