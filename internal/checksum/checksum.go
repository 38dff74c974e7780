// Package checksum verifies transferred files: it streams every remote_files
// URL referenced by a directory of import sheets through SHA-1 and writes a
// url,checksum sheet the receiving side can compare against.
package checksum

import (
	"context"
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vvka-141/exodus/internal/retry"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// Entry is one checksummed remote file.
type Entry struct {
	URL      string
	Checksum string
}

// Hasher checksums the remote files referenced by import sheets.
type Hasher struct {
	http     *http.Client
	executor *retry.Executor
	logger   exodus.Logger
	progress func(done, total int)
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(hs *Hasher) {
		hs.http = h
	}
}

// WithProgress installs a callback invoked after each hashed file.
func WithProgress(fn func(done, total int)) Option {
	return func(hs *Hasher) {
		hs.progress = fn
	}
}

// New creates a Hasher.
func New(logger exodus.Logger, opts ...Option) *Hasher {
	h := &Hasher{
		http: &http.Client{Timeout: exodus.DefaultRequestTimeout},
		executor: retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(exodus.DefaultRetryMaxAttempts),
		),
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.executor = h.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		h.logger.Verbose("retrying download after %v (attempt %d): %v", delay, attempt+1, err)
	})
	return h
}

// CollectURLs walks a directory of CSV sheets and returns every non-empty
// remote_files value, in sheet order with sheets sorted by path.
func CollectURLs(dir string) ([]string, error) {
	var sheets []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".csv") {
			sheets = append(sheets, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(sheets)

	var urls []string
	for _, sheet := range sheets {
		sheetURLs, err := remoteFiles(sheet)
		if err != nil {
			return nil, err
		}
		urls = append(urls, sheetURLs...)
	}
	return urls, nil
}

func remoteFiles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	column := -1
	for i, field := range all[0] {
		if field == "remote_files" {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, nil
	}

	var urls []string
	for _, row := range all[1:] {
		if column < len(row) && row[column] != "" {
			urls = append(urls, row[column])
		}
	}
	return urls, nil
}

// HashAll streams every URL through SHA-1.
func (h *Hasher) HashAll(ctx context.Context, urls []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(urls))
	for i, url := range urls {
		sum, err := h.hashURL(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("checksumming %s: %w", url, err)
		}
		entries = append(entries, Entry{URL: url, Checksum: sum})
		if h.progress != nil {
			h.progress(i+1, len(urls))
		}
	}
	return entries, nil
}

func (h *Hasher) hashURL(ctx context.Context, url string) (string, error) {
	var sum string
	err := h.executor.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := h.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &exodus.StatusError{StatusCode: resp.StatusCode, URL: url}
		}
		hash := sha1.New()
		if _, err := io.Copy(hash, resp.Body); err != nil {
			return err
		}
		sum = hex.EncodeToString(hash.Sum(nil))
		return nil
	})
	if err != nil {
		return "", err
	}
	return sum, nil
}

// WriteSheet hashes every remote file referenced under dir and writes the
// url,checksum sheet to out.
func (h *Hasher) WriteSheet(ctx context.Context, dir, out string) error {
	urls, err := CollectURLs(dir)
	if err != nil {
		return err
	}
	entries, err := h.HashAll(ctx, urls)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "checksum"}); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.URL, entry.Checksum}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
