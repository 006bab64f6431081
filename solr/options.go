package solr

import (
	"net/http"
	"time"
)

// Defaults applied when the corresponding option is not given.
const (
	DefaultIDField       = "id"
	DefaultPageSize      = 10
	DefaultTimeout       = 30 * time.Second
	DefaultRetries       = 10
	DefaultBackoffFactor = 4.0
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	idField       string
	pageSize      int
	timeout       time.Duration
	retries       int
	backoffFactor float64
	httpClient    *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		idField:       DefaultIDField,
		pageSize:      DefaultPageSize,
		timeout:       DefaultTimeout,
		retries:       DefaultRetries,
		backoffFactor: DefaultBackoffFactor,
	}
}

// WithIDField sets the name of the unique identifier field in the schema.
// It is used as the sort tiebreaker for cursor pagination.
func WithIDField(field string) Option {
	return func(o *clientOptions) {
		if field != "" {
			o.idField = field
		}
	}
}

// WithPageSize sets the number of documents fetched per page.
func WithPageSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetries sets the maximum number of retry attempts on transient
// failures. Zero disables retries.
func WithRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.retries = retries
		}
	}
}

// WithBackoff sets the exponential backoff growth factor applied between
// retry attempts.
func WithBackoff(factor float64) Option {
	return func(o *clientOptions) {
		if factor > 0 {
			o.backoffFactor = factor
		}
	}
}

// WithHTTPClient replaces the retrying HTTP client entirely. Retry and
// timeout options are ignored when set; intended for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}
