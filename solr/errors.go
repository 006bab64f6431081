package solr

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrInvalidConfig indicates invalid client configuration.
	ErrInvalidConfig = errors.New("invalid solr configuration")

	// ErrMultipleResults indicates a single-result query matched more than
	// one document.
	ErrMultipleResults = errors.New("query matched more than one document")

	// ErrNotAvailable indicates the Solr server could not be reached.
	ErrNotAvailable = errors.New("solr server is not available")

	// ErrStop may be returned from an Each callback to stop the walk early
	// without surfacing an error.
	ErrStop = errors.New("stop iteration")
)

// APIError represents a non-success response from Solr.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("solr API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("solr API error: status %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a missing core or handler.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsBadRequest checks if the error indicates a malformed query.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == 400
}

// ValidationError indicates a document in the response could not be decoded
// into the target model, or failed the model's own validation.
type ValidationError struct {
	DocID string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.DocID != "" {
		return fmt.Sprintf("invalid document %q: %v", e.DocID, e.Err)
	}
	return fmt.Sprintf("invalid document: %v", e.Err)
}

// Unwrap returns the underlying decode or validation error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
