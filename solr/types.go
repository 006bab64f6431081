package solr

import "encoding/json"

// FacetCount is a single facet bucket: a distinct field value and the
// number of matching documents.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// selectResponse is the standard Solr JSON response for a select request.
type selectResponse struct {
	ResponseHeader responseHeader `json:"responseHeader"`
	Response       responseBody   `json:"response"`
	NextCursorMark string         `json:"nextCursorMark"`
	FacetCounts    *facetCounts   `json:"facet_counts"`
	Error          *responseError `json:"error"`
}

type responseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
}

type responseBody struct {
	NumFound int               `json:"numFound"`
	Start    int               `json:"start"`
	MaxScore float64           `json:"maxScore"`
	Docs     []json.RawMessage `json:"docs"`
}

// facetCounts holds the flattened facet_fields arrays, where values and
// counts alternate: ["fiction", 5, "science", 3].
type facetCounts struct {
	FacetFields map[string][]any `json:"facet_fields"`
}

type responseError struct {
	Metadata []string `json:"metadata"`
	Msg      string   `json:"msg"`
	Code     int      `json:"code"`
}
