// Package fedora is a minimal Fedora 3 REST API client covering the one
// thing the migration needs: reading datastream content.
package fedora

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vvka-141/exodus/internal/retry"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// extensions maps response content types to file extensions for downloaded
// datastreams. Unknown types fall back to "bin".
var extensions = map[string]string{
	"image/tiff":      "tif",
	"image/jp2":       "jp2",
	"application/xml": "xml",
	"text/xml":        "xml",
	"application/pdf": "pdf",
	"audio/vnd.wave":  "wav",
	"image/jpeg":      "jpg",
	"text/plain":      "txt",
	"text/x-asm":      "vtt",
	"text/x-c++":      "vtt",
	"text/x-c":        "vtt",
	"video/dv":        "dv",
}

// Client talks to one Fedora 3 instance with basic auth. It implements
// exodus.ObjectRepository.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	executor *retry.Executor
	logger   exodus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithExecutor replaces the default retry executor.
func WithExecutor(e *retry.Executor) Option {
	return func(c *Client) {
		c.executor = e
	}
}

// New creates a Fedora client for the given base URL and credentials.
func New(baseURL, username, password string, logger exodus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: exodus.DefaultRequestTimeout},
		executor: retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(exodus.DefaultRetryMaxAttempts),
		),
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.executor = c.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		c.logger.Verbose("retrying datastream fetch after %v (attempt %d): %v", delay, attempt+1, err)
	})
	return c
}

// normalizePID strips the info:fedora/ URI prefix if present.
func normalizePID(pid string) string {
	return strings.TrimSpace(strings.TrimPrefix(pid, "info:fedora/"))
}

func (c *Client) contentURL(pid, dsid string) string {
	return fmt.Sprintf("%s/objects/%s/datastreams/%s/content", c.baseURL, normalizePID(pid), dsid)
}

// fetch performs one authenticated GET with retries and hands the open
// response body to fn. fn runs once, on the successful attempt.
func (c *Client) fetch(ctx context.Context, pid, dsid string, fn func(contentType string, body io.Reader) error) error {
	requestURL := c.contentURL(pid, dsid)
	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &exodus.StatusError{StatusCode: resp.StatusCode, URL: requestURL}
		}
		return fn(resp.Header.Get("Content-Type"), resp.Body)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", exodus.ErrIndexUnavailable, err)
	}
	return nil
}

// GetDatastream downloads a datastream's content into memory.
func (c *Client) GetDatastream(ctx context.Context, pid, dsid string) ([]byte, error) {
	var content []byte
	err := c.fetch(ctx, pid, dsid, func(contentType string, body io.Reader) error {
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		content = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// DownloadDatastream streams a datastream to a file under dir. The file is
// named {pid}_{dsid}.{ext} with the pid's colon replaced by an underscore,
// the same shape the metadata stage expects for its MODS exports. Returns
// the written path.
func (c *Client) DownloadDatastream(ctx context.Context, pid, dsid, dir string) (string, error) {
	name := strings.ReplaceAll(normalizePID(pid), ":", "_") + "_" + dsid
	var path string
	err := c.fetch(ctx, pid, dsid, func(contentType string, body io.Reader) error {
		path = filepath.Join(dir, name+"."+guessExtension(contentType))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, body); err != nil {
			f.Close()
			os.Remove(path)
			return err
		}
		return f.Close()
	})
	if err != nil {
		return "", err
	}
	c.logger.Verbose("downloaded %s/%s to %s", normalizePID(pid), dsid, path)
	return path, nil
}

func guessExtension(contentType string) string {
	// headers can carry parameters, e.g. "text/xml; charset=UTF-8"
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if ext, ok := extensions[mediaType]; ok {
		return ext
	}
	return "bin"
}
