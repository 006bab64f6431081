package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Client queries a single Solr core over HTTP. It is safe for reuse across
// calls; each call is synchronous. Release idle connections with Close when
// the client is no longer needed.
type Client struct {
	baseURL   string
	endpoint  string
	selectURL string
	idField   string
	pageSize  int

	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Solr client for the given server URL and core
// endpoint (e.g. "solr/books").
func NewClient(baseURL, endpoint string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: server URL is required", ErrInvalidConfig)
	}
	if endpoint == "" {
		return nil, fmt.Errorf("%w: core endpoint is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	endpoint = strings.Trim(endpoint, "/")

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newRetryingClient(o, logger)
	}

	return &Client{
		baseURL:    baseURL,
		endpoint:   endpoint,
		selectURL:  fmt.Sprintf("%s/%s/select", baseURL, endpoint),
		idField:    o.idField,
		pageSize:   o.pageSize,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// newRetryingClient builds the underlying HTTP client with bounded retries
// and exponential backoff on transport errors, 429 and 5xx responses.
func newRetryingClient(o clientOptions, logger zerolog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = o.retries
	rc.RetryWaitMin = time.Millisecond
	rc.RetryWaitMax = 2 * time.Minute
	rc.Backoff = expBackoff(o.backoffFactor)
	rc.Logger = retryLogger{logger}
	rc.HTTPClient.Timeout = o.timeout
	return rc.StandardClient()
}

// expBackoff grows the retry delay as factor * 2^attempt seconds, clamped
// to the configured bounds.
func expBackoff(factor float64) retryablehttp.Backoff {
	return func(minWait, maxWait time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := time.Duration(factor * math.Pow(2, float64(attemptNum)) * float64(time.Second))
		if wait < minWait {
			return minWait
		}
		if wait > maxWait {
			return maxWait
		}
		return wait
	}
}

// retryLogger adapts zerolog to the retryablehttp leveled logger.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the configured core endpoint path.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// IDField returns the configured unique identifier field.
func (c *Client) IDField() string {
	return c.idField
}

// PageSize returns the configured pagination page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// doSelect executes a select request and decodes the standard Solr response
// envelope. Retries are handled inside the HTTP client; an error here means
// retries were exhausted or the response was unusable.
func (c *Client) doSelect(ctx context.Context, params url.Values) (*selectResponse, error) {
	params.Set("wt", "json")

	reqURL := c.selectURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("q", params.Get("q")).Str("url", c.selectURL).Msg("Executing Solr select")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		var sr selectResponse
		if json.Unmarshal(body, &sr) == nil && sr.Error != nil {
			apiErr.Message = sr.Error.Msg
		}
		return nil, apiErr
	}

	var sr selectResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("unexpected response from Solr: %w", err)
	}

	return &sr, nil
}

// Ping checks that the server answers a trivial select on the core.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("q", MatchAll().String())
	params.Set("rows", "0")

	if _, err := c.doSelect(ctx, params); err != nil {
		return err
	}
	return nil
}

// IsAvailable reports whether the server is reachable and the core answers
// queries.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.Ping(ctx) == nil
}

// Count returns the number of documents matching the query. The empty query
// counts all documents.
func (c *Client) Count(ctx context.Context, query Query) (int, error) {
	params := url.Values{}
	params.Set("q", queryParam(query))
	params.Set("rows", "0")

	sr, err := c.doSelect(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return sr.Response.NumFound, nil
}

// Facet returns the distinct values of a field among documents matching the
// query, with the number of matching documents per value.
func (c *Client) Facet(ctx context.Context, query Query, field Field) ([]FacetCount, error) {
	params := url.Values{}
	params.Set("q", queryParam(query))
	params.Set("rows", "0")
	params.Set("facet", "true")
	params.Set("facet.field", field.Alias())

	sr, err := c.doSelect(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("facet on %s failed: %w", field.Name(), err)
	}

	if sr.FacetCounts == nil {
		return nil, fmt.Errorf("unexpected response from Solr: facet counts missing")
	}
	pairs, ok := sr.FacetCounts.FacetFields[field.Alias()]
	if !ok {
		return nil, fmt.Errorf("unexpected response from Solr: no facet data for field %q", field.Alias())
	}

	return decodeFacetPairs(pairs)
}

// decodeFacetPairs converts Solr's flattened facet array, where values and
// counts alternate, into FacetCount pairs.
func decodeFacetPairs(pairs []any) ([]FacetCount, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("unexpected response from Solr: odd facet pair count %d", len(pairs))
	}

	counts := make([]FacetCount, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		value, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("unexpected response from Solr: facet value %v is not a string", pairs[i])
		}
		count, ok := pairs[i+1].(float64)
		if !ok {
			return nil, fmt.Errorf("unexpected response from Solr: facet count %v is not a number", pairs[i+1])
		}
		counts = append(counts, FacetCount{Value: value, Count: int(count)})
	}
	return counts, nil
}

// queryParam renders a query for the q parameter, falling back to match-all
// for the empty query.
func queryParam(query Query) string {
	if query.IsZero() {
		return MatchAll().String()
	}
	return query.String()
}
