// Package filter provides client-side filtering of Solr documents using
// expr expressions. Filters run against documents already fetched from the
// server, covering predicates Solr's query syntax cannot express.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled predicate applied to raw Solr documents.
type Filter struct {
	expression string
	idField    string
	program    *vm.Program
}

// Option adjusts filter compilation.
type Option func(*Filter)

// WithIDField sets the document field used to identify documents in
// evaluation errors. Defaults to "id".
func WithIDField(name string) Option {
	return func(f *Filter) {
		if name != "" {
			f.idField = name
		}
	}
}

// Compile compiles a filter expression. The expression must evaluate to a
// boolean; documents are exposed as the Doc map plus helper functions.
func Compile(expression string, opts ...Option) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty filter expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(nil)),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		idField:    "id",
		program:    program,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a document.
func (f *Filter) Match(doc map[string]any) (bool, error) {
	result, err := expr.Run(f.program, environment(doc))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			DocID:      f.docID(doc),
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			DocID:      f.docID(doc),
			Reason:     fmt.Sprintf("expression returned %T, want bool", result),
		}
	}
	return matched, nil
}

// environment builds the expr evaluation environment for a document.
func environment(doc map[string]any) map[string]any {
	return map[string]any{
		// Document data
		"Doc": doc,

		// Field helpers
		"has": func(name string) bool {
			_, ok := doc[name]
			return ok
		},
		"field": func(name string) any {
			return doc[name]
		},
		"str": func(name string) string {
			return asString(doc[name])
		},
		"num": func(name string) float64 {
			return asNumber(doc[name])
		},

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"now": time.Now,
	}
}

func (f *Filter) docID(doc map[string]any) string {
	if id, ok := doc[f.idField]; ok {
		return asString(id)
	}
	return ""
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
