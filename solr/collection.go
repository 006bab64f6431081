package solr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Validator is implemented by document models that carry their own schema
// checks. Validate runs after every successful decode.
type Validator interface {
	Validate() error
}

// Collection is a typed view of a client, mapping response documents into
// the model type T. Multiple collections may share one client.
type Collection[T any] struct {
	client *Client
}

// NewCollection creates a typed collection backed by the given client.
func NewCollection[T any](client *Client) *Collection[T] {
	return &Collection[T]{client: client}
}

// Client returns the underlying client.
func (col *Collection[T]) Client() *Client {
	return col.client
}

// SearchOption adjusts a single search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	fields  []string
	filters []Query
	sort    string
	limit   int
}

// Fields restricts the returned document fields.
func Fields(fields ...string) SearchOption {
	return func(o *searchOptions) {
		o.fields = fields
	}
}

// FilterBy adds a Solr filter query (fq). Filter queries constrain the
// result set without affecting relevance scoring and are cached by the
// server independently of q.
func FilterBy(query Query) SearchOption {
	return func(o *searchOptions) {
		if !query.IsZero() {
			o.filters = append(o.filters, query)
		}
	}
}

// SortBy sets the sort clause, e.g. "year desc". The ID field is appended
// as a tiebreaker so cursor pagination stays stable.
func SortBy(clause string) SearchOption {
	return func(o *searchOptions) {
		o.sort = clause
	}
}

// Limit caps the total number of documents returned across all pages.
// Zero means no limit.
func Limit(n int) SearchOption {
	return func(o *searchOptions) {
		if n >= 0 {
			o.limit = n
		}
	}
}

// Search returns all documents matching the query, paginating with a Solr
// cursor under the hood. A query matching nothing returns an empty slice.
func (col *Collection[T]) Search(ctx context.Context, query Query, opts ...SearchOption) ([]T, error) {
	var out []T
	err := col.Each(ctx, query, func(doc T) error {
		out = append(out, doc)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Each streams documents matching the query to fn, page by page. Returning
// an error from fn stops the walk and surfaces that error.
func (col *Collection[T]) Each(ctx context.Context, query Query, fn func(T) error, opts ...SearchOption) error {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	params := url.Values{}
	params.Set("q", queryParam(query))
	params.Set("rows", strconv.Itoa(col.pageRows(o)))
	params.Set("sort", col.sortClause(o))
	if len(o.fields) > 0 {
		params.Set("fl", strings.Join(o.fields, ","))
	}
	for _, fq := range o.filters {
		params.Add("fq", fq.String())
	}

	seen := 0
	cursor := "*"
	for {
		params.Set("cursorMark", cursor)

		sr, err := col.client.doSelect(ctx, params)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		for _, raw := range sr.Response.Docs {
			doc, err := col.decode(raw)
			if err != nil {
				return err
			}
			if err := fn(doc); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			seen++
			if o.limit > 0 && seen >= o.limit {
				return nil
			}
		}

		col.client.logger.Debug().
			Int("fetched", seen).
			Int("total", sr.Response.NumFound).
			Msg("Retrieved page of documents from Solr")

		// Solr signals the last page by echoing the cursor back.
		if sr.NextCursorMark == "" || sr.NextCursorMark == cursor {
			return nil
		}
		cursor = sr.NextCursorMark
	}
}

// GetOne returns the single document matching the query, nil when nothing
// matches, and ErrMultipleResults when the match is not unique.
func (col *Collection[T]) GetOne(ctx context.Context, query Query, opts ...SearchOption) (*T, error) {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	params := url.Values{}
	params.Set("q", queryParam(query))
	params.Set("rows", "1")
	if len(o.fields) > 0 {
		params.Set("fl", strings.Join(o.fields, ","))
	}
	for _, fq := range o.filters {
		params.Add("fq", fq.String())
	}

	sr, err := col.client.doSelect(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}

	switch {
	case sr.Response.NumFound == 0:
		return nil, nil
	case sr.Response.NumFound > 1:
		return nil, fmt.Errorf("%w: %d matches", ErrMultipleResults, sr.Response.NumFound)
	case len(sr.Response.Docs) == 0:
		return nil, fmt.Errorf("unexpected response from Solr: numFound is 1 but no document returned")
	}

	doc, err := col.decode(sr.Response.Docs[0])
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Count returns the number of documents matching the query.
func (col *Collection[T]) Count(ctx context.Context, query Query) (int, error) {
	return col.client.Count(ctx, query)
}

// Facet returns facet counts for a field among documents matching the query.
func (col *Collection[T]) Facet(ctx context.Context, query Query, field Field) ([]FacetCount, error) {
	return col.client.Facet(ctx, query, field)
}

func (col *Collection[T]) pageRows(o searchOptions) int {
	rows := col.client.pageSize
	if o.limit > 0 && o.limit < rows {
		rows = o.limit
	}
	return rows
}

// sortClause builds the sort parameter. Cursor pagination requires a total
// order, so the ID field always terminates the clause.
func (col *Collection[T]) sortClause(o searchOptions) string {
	tiebreak := col.client.idField + " asc"
	if o.sort == "" {
		return tiebreak
	}
	for _, part := range strings.Split(o.sort, ",") {
		field, _, _ := strings.Cut(strings.TrimSpace(part), " ")
		if field == col.client.idField {
			return o.sort
		}
	}
	return o.sort + "," + tiebreak
}

// decode maps a raw response document into the model type, applying the
// model's own validation when present.
func (col *Collection[T]) decode(raw json.RawMessage) (T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, &ValidationError{DocID: col.docID(raw), Err: err}
	}
	if v, ok := any(&doc).(Validator); ok {
		if err := v.Validate(); err != nil {
			return doc, &ValidationError{DocID: col.docID(raw), Err: err}
		}
	}
	return doc, nil
}

// docID extracts the identifier field from a raw document for error
// reporting. Best effort only.
func (col *Collection[T]) docID(raw json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	id, ok := fields[col.client.idField]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", id)
}
