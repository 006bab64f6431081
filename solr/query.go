package solr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Wildcard matches any value when used as a term value.
const Wildcard = "*"

// Conjunction is the logical operator joining query clauses.
type Conjunction string

// Supported conjunctions.
const (
	And Conjunction = " AND "
	Or  Conjunction = " OR "
)

// Query is a composable Solr query expression. The zero value is the empty
// query, which renders as "" and acts as the identity when combined.
type Query struct {
	expr string
	neg  bool
}

// MatchAll returns the query matching every document.
func MatchAll() Query {
	return Query{expr: "*:*"}
}

// Raw wraps an already-formed Solr query fragment.
func Raw(expr string) Query {
	return Query{expr: expr}
}

// Term matches a single field against a value. Strings are quoted, numbers
// and the wildcard are rendered bare, and a nil or unsupported value yields
// the empty query.
func Term(field Field, value any) Query {
	s := formatValue(value)
	if s == "" {
		return Query{}
	}
	return Query{expr: field.Alias() + ":" + s}
}

// In matches a field against any of the given values.
func In(field Field, values ...any) Query {
	return list(field, Or, values)
}

// AllOf matches a field against all of the given values.
func AllOf(field Field, values ...any) Query {
	return list(field, And, values)
}

func list(field Field, conj Conjunction, values []any) Query {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if s := formatValue(v); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return Query{}
	}
	return Query{expr: field.Alias() + ":(" + strings.Join(parts, string(conj)) + ")"}
}

// Range matches a field against an inclusive range. A nil bound is open and
// renders as the wildcard.
func Range(field Field, lo, hi any) Query {
	los := formatValue(lo)
	if los == "" {
		los = Wildcard
	}
	his := formatValue(hi)
	if his == "" {
		his = Wildcard
	}
	return Query{expr: fmt.Sprintf("%s:[%s TO %s]", field.Alias(), los, his)}
}

// Regex matches a field against a Solr regular expression.
func Regex(field Field, pattern string) Query {
	if pattern == "" {
		return Query{}
	}
	return Query{expr: field.Alias() + ":/" + pattern + "/"}
}

// Group wraps a query in parentheses so it combines as a single clause.
func Group(q Query) Query {
	s := q.render()
	if s == "" {
		return Query{}
	}
	return Query{expr: "(" + s + ")"}
}

// And combines two queries with a logical AND. Combining with the empty
// query returns the other operand unchanged.
func (q Query) And(other Query) Query {
	return q.combine(other, And)
}

// Or combines two queries with a logical OR.
func (q Query) Or(other Query) Query {
	return q.combine(other, Or)
}

// Not negates the query. Negating a composite expression negates it as a
// whole; wrap it with Group first if that is the intent.
func (q Query) Not() Query {
	q.neg = !q.neg
	return q
}

// IsZero reports whether the query is empty.
func (q Query) IsZero() bool {
	return q.expr == ""
}

// String renders the query as a Solr query string.
func (q Query) String() string {
	return q.render()
}

func (q Query) combine(other Query, conj Conjunction) Query {
	left, right := q.render(), other.render()
	if left == "" {
		return other
	}
	if right == "" {
		return q
	}
	return Query{expr: left + string(conj) + right}
}

func (q Query) render() string {
	if q.expr == "" {
		return ""
	}
	if q.neg {
		return "-" + q.expr
	}
	return q.expr
}

// solrTimeFormat is the date format Solr expects in query strings.
const solrTimeFormat = "2006-01-02T15:04:05Z"

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		if v == Wildcard {
			return Wildcard
		}
		return quote(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(solrTimeFormat)
	case Field:
		return quote(v.Alias())
	case *regexp.Regexp:
		return "/" + v.String() + "/"
	case fmt.Stringer:
		return quote(v.String())
	default:
		// Values outside the supported set render as the empty string,
		// collapsing the containing clause to the empty query.
		return ""
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
