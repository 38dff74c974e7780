// Package risearch queries the legacy Fedora 3 resource index over HTTP.
//
// Queries are SPARQL tuple searches returning CSV, matching what the legacy
// endpoint actually supports. All queries are read-only and idempotent, so
// transient failures are retried with exponential backoff.
package risearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/exodus/internal/retry"
	"github.com/vvka-141/exodus/pkg/exodus"
)

const fedoraURIPrefix = "info:fedora/"

// workTypeModels maps the CLI work-type names to content-model IRIs.
var workTypeModels = map[string]string{
	"book":        "info:fedora/islandora:bookCModel",
	"image":       "info:fedora/islandora:sp_basic_image",
	"large_image": "info:fedora/islandora:sp_large_image_cmodel",
	"compound":    "info:fedora/islandora:compoundCModel",
	"audio":       "info:fedora/islandora:sp-audioCModel",
	"video":       "info:fedora/islandora:sp_videoCModel",
	"pdf":         "info:fedora/islandora:sp_pdf",
	"binary":      "info:fedora/islandora:binaryObjectCModel",
}

// Client talks to one resource-index endpoint. It implements
// exodus.ResourceIndex.
type Client struct {
	endpoint string
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

// New creates a resource-index client for the given endpoint.
func New(endpoint string, logger exodus.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
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
		c.logger.Verbose("retrying index query after %v (attempt %d): %v", delay, attempt+1, err)
	})
	return c
}

// tuples runs one SPARQL tuple query and returns the response split into
// lines, header included.
func (c *Client) tuples(ctx context.Context, query string) ([]string, error) {
	requestURL := fmt.Sprintf("%s?type=tuples&lang=sparql&format=CSV&query=%s",
		c.endpoint, url.QueryEscape(query))

	var body string
	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &exodus.StatusError{StatusCode: resp.StatusCode, URL: c.endpoint}
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exodus.ErrIndexUnavailable, err)
	}
	return strings.Split(body, "\n"), nil
}

// pids filters tuple lines down to object identifiers: fedora URIs reduced
// to their final path segment.
func (c *Client) pids(ctx context.Context, query string) ([]string, error) {
	lines, err := c.tuples(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "info") {
			continue
		}
		results = append(results, line[strings.LastIndex(line, "/")+1:])
	}
	return results, nil
}

// GetWorkType returns the content-model IRI of an object, skipping the
// fedora-system base models every object carries.
func (c *Client) GetWorkType(ctx context.Context, pid string) (string, error) {
	query := fmt.Sprintf(
		"SELECT ?work_type FROM <#ri> WHERE {<info:fedora/%s> "+
			"<info:fedora/fedora-system:def/model#hasModel> ?work_type .}", pid)
	lines, err := c.tuples(ctx, query)
	if err != nil {
		return "", err
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 || line == "" || strings.Contains(line, "fedora-system:") {
			continue
		}
		return line, nil
	}
	return "", fmt.Errorf("no content model recorded for %s", pid)
}

// GetParentCollections returns the PIDs of the collections an object is a
// member of.
func (c *Client) GetParentCollections(ctx context.Context, pid string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT ?parent FROM <#ri> WHERE {<info:fedora/%s> "+
			"<info:fedora/fedora-system:def/relations-external#isMemberOfCollection> ?parent .}", pid)
	return c.pids(ctx, query)
}

// FindPagesInBook returns the pages of a book, ordered by page number so
// repeated runs produce identical sheets.
func (c *Client) FindPagesInBook(ctx context.Context, pid string) ([]exodus.PageEntry, error) {
	query := fmt.Sprintf(
		"SELECT ?pid ?page WHERE { "+
			"?pid <info:fedora/fedora-system:def/model#hasModel> <info:fedora/islandora:pageCModel> ;"+
			"<info:fedora/fedora-system:def/relations-external#isMemberOf> <info:fedora/%s> ; "+
			"<http://islandora.ca/ontology/relsext#isPageNumber> ?page . }", pid)
	lines, err := c.tuples(ctx, query)
	if err != nil {
		return nil, err
	}

	var pages []exodus.PageEntry
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == `"pid","page"` {
			continue
		}
		columns := strings.SplitN(line, ",", 2)
		if len(columns) != 2 {
			continue
		}
		pages = append(pages, exodus.PageEntry{
			PID:    strings.TrimPrefix(columns[0], fedoraURIPrefix),
			Number: columns[1],
		})
	}
	sortByNumericText(pages, func(p exodus.PageEntry) string { return p.Number })
	return pages, nil
}

// GetCompoundObjectParts returns the constituents of a compound object with
// their sequence numbers and content models, ordered by sequence.
func (c *Client) GetCompoundObjectParts(ctx context.Context, pid string) ([]exodus.PartEntry, error) {
	sequencePredicate := fmt.Sprintf(
		"http://islandora.ca/ontology/relsext#isSequenceNumberOf%s",
		strings.ReplaceAll(pid, ":", "_"))
	query := fmt.Sprintf(
		"SELECT ?pid ?sequence ?model WHERE { "+
			"?pid <info:fedora/fedora-system:def/relations-external#isConstituentOf> <info:fedora/%s> ; "+
			"<%s> ?sequence ; "+
			"<info:fedora/fedora-system:def/model#hasModel> ?model . }", pid, sequencePredicate)
	lines, err := c.tuples(ctx, query)
	if err != nil {
		return nil, err
	}

	var parts []exodus.PartEntry
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, `"pid"`) {
			continue
		}
		columns := strings.SplitN(line, ",", 3)
		if len(columns) != 3 || strings.Contains(columns[2], "fedora-system:") {
			continue
		}
		parts = append(parts, exodus.PartEntry{
			PID:      strings.TrimPrefix(columns[0], fedoraURIPrefix),
			Sequence: columns[1],
			Model:    columns[2],
		})
	}
	sortByNumericText(parts, func(p exodus.PartEntry) string { return p.Sequence })
	return parts, nil
}

// GetDatastreamIDs returns the datastream ids an object disseminates.
func (c *Client) GetDatastreamIDs(ctx context.Context, pid string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT $files FROM <#ri> WHERE { <info:fedora/%s> "+
			"<info:fedora/fedora-system:def/view#disseminates> $files . }", pid)
	return c.pids(ctx, query)
}

// GetWorksByTypeAndCollection returns the PIDs in a collection carrying the
// content model named by workType, sorted for stable iteration.
func (c *Client) GetWorksByTypeAndCollection(ctx context.Context, workType, collection string) ([]string, error) {
	iri, ok := workTypeModels[workType]
	if !ok {
		return nil, fmt.Errorf("unknown work type %q: %w", workType, exodus.ErrUnknownContentModel)
	}

	query := fmt.Sprintf(
		"PREFIX rels-ext: <info:fedora/fedora-system:def/relations-external#>"+
			"PREFIX model: <info:fedora/fedora-system:def/model#>"+
			"SELECT ?pid WHERE { ?pid rels-ext:isMemberOfCollection <info:fedora/%s> ;"+
			"model:hasModel <%s> ."+
			"}", collection, iri)
	pids, err := c.pids(ctx, query)
	if err != nil {
		return nil, err
	}
	sort.Strings(pids)
	return pids, nil
}

// GetPoliciesByTypeAndCollection returns the PIDs of matching works that
// carry a POLICY datastream, sorted for stable iteration.
func (c *Client) GetPoliciesByTypeAndCollection(ctx context.Context, workType, collection string) ([]string, error) {
	iri, ok := workTypeModels[workType]
	if !ok {
		return nil, fmt.Errorf("unknown work type %q: %w", workType, exodus.ErrUnknownContentModel)
	}

	query := fmt.Sprintf(
		"PREFIX rels-ext: <info:fedora/fedora-system:def/relations-external#>"+
			"PREFIX model: <info:fedora/fedora-system:def/model#>"+
			"PREFIX view: <info:fedora/fedora-system:def/view#>"+
			"SELECT ?policy WHERE { ?pid rels-ext:isMemberOfCollection <info:fedora/%s> ;"+
			"model:hasModel <%s> ;"+
			"view:disseminates ?policy ."+
			"}", collection, iri)
	lines, err := c.tuples(ctx, query)
	if err != nil {
		return nil, err
	}

	var pids []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "info") || !strings.HasSuffix(line, "/POLICY") {
			continue
		}
		uri := strings.TrimSuffix(strings.TrimPrefix(line, fedoraURIPrefix), "/POLICY")
		pids = append(pids, uri)
	}
	sort.Strings(pids)
	return pids, nil
}

// sortByNumericText orders entries by a textual number column, falling back
// to string order for non-numeric values.
func sortByNumericText[T any](entries []T, key func(T) string) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, errA := strconv.Atoi(key(entries[i]))
		b, errB := strconv.Atoi(key(entries[j]))
		if errA == nil && errB == nil {
			return a < b
		}
		return key(entries[i]) < key(entries[j])
	})
}
