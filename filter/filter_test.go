package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{"empty expression", ""},
		{"whitespace only", "   "},
		{"syntax error", "Doc.title =="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			require.Error(t, err)

			var cErr *CompilationError
			assert.True(t, errors.As(err, &cErr))
		})
	}
}

func TestMatch(t *testing.T) {
	doc := map[string]any{
		"id":     "42",
		"title":  "Dune Messiah",
		"year":   float64(1969), // JSON numbers decode as float64
		"genres": []any{"fiction", "science"},
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"field access", `Doc.title == "Dune Messiah"`, true},
		{"field mismatch", `Doc.title == "Dune"`, false},
		{"has helper", `has("year")`, true},
		{"has missing", `has("author")`, false},
		{"num helper", `num("year") > 1960`, true},
		{"str helper", `str("id") == "42"`, true},
		{"contains is case-insensitive", `contains(str("title"), "dune")`, true},
		{"startsWith", `startsWith(str("title"), "dune")`, true},
		{"endsWith", `endsWith(str("title"), "messiah")`, true},
		{"list membership", `"fiction" in Doc.genres`, true},
		{"combined", `num("year") < 1970 and contains(str("title"), "messiah")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchNonBoolean(t *testing.T) {
	f, err := Compile(`str("title")`)
	require.NoError(t, err)

	_, err = f.Match(map[string]any{"id": "7", "title": "Dune"})
	require.Error(t, err)

	var eErr *EvaluationError
	require.True(t, errors.As(err, &eErr))
	assert.Equal(t, "7", eErr.DocID)
}

func TestMatchCustomIDField(t *testing.T) {
	f, err := Compile(`str("title")`, WithIDField("uuid"))
	require.NoError(t, err)

	_, err = f.Match(map[string]any{"uuid": "abc-123", "title": "Dune"})
	require.Error(t, err)

	var eErr *EvaluationError
	require.True(t, errors.As(err, &eErr))
	assert.Equal(t, "abc-123", eErr.DocID)
}

func TestMatchMissingFieldIsFalsy(t *testing.T) {
	f, err := Compile(`num("missing") > 0`)
	require.NoError(t, err)

	got, err := f.Match(map[string]any{"id": "1"})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestDateHelpers(t *testing.T) {
	f, err := Compile(`daysSince(parseDate("2000-01-01")) > 365`)
	require.NoError(t, err)

	got, err := f.Match(map[string]any{})
	require.NoError(t, err)
	assert.True(t, got)
}
