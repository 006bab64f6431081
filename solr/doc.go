// Package solr provides a typed client for querying an Apache Solr server
// over HTTP.
//
// The package covers the query side of Solr only: building query strings,
// executing select requests with retry/backoff, and mapping the JSON
// response into caller-supplied document models. It does not implement
// indexing or document updates.
//
// # Features
//
//   - Composable query builder (terms, ranges, lists, regex, negation, grouping)
//   - Field aliasing between logical names and schema field names
//   - Cursor-based pagination for deep result sets
//   - Bounded retries with exponential backoff on transient failures
//   - Generic document mapping with optional post-decode validation
//   - Facet counts as (value, count) pairs
//
// # Usage
//
//	client, err := solr.NewClient("http://localhost:8983", "solr/books", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	title := solr.NewField("title")
//	year := solr.NewField("year").WithAlias("publication_year")
//
//	books := solr.NewCollection[Book](client)
//	results, err := books.Search(ctx, solr.Term(title, "dune").And(solr.Range(year, 1960, 1970)))
//
// Document types may implement the Validator interface to have schema
// checks applied to every decoded document.
package solr
