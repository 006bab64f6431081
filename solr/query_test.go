package solr

import (
	"regexp"
	"testing"
	"time"
)

var (
	nameField   = NewField("name")
	yearField   = NewField("year").WithAlias("publication_year")
	statusField = NewField("status")
)

type docStatus string

func (s docStatus) String() string { return string(s) }

const statusPublished docStatus = "published"

func TestQueryString(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"string value", Term(nameField, "Alice"), `name:"Alice"`},
		{"integer value", Term(yearField, 2020), "publication_year:2020"},
		{"int64 value", Term(yearField, int64(2020)), "publication_year:2020"},
		{"float value", Term(yearField, 19.99), "publication_year:19.99"},
		{"bool value", Term(statusField, true), "status:true"},
		{"stringer value", Term(statusField, statusPublished), `status:"published"`},
		{"field as value", Term(nameField, yearField), `name:"publication_year"`},
		{"wildcard", Term(nameField, Wildcard), "name:*"},
		{"nil value", Term(nameField, nil), ""},
		{"slice value", Term(nameField, []string{"a", "b"}), ""},
		{"struct value", Term(nameField, struct{ X int }{1}), ""},
		{"unsupported list element skipped", In(nameField, "Alice", []int{1}), `name:("Alice")`},
		{"unsupported range bound is open", Range(yearField, []int{1}, 2020), "publication_year:[* TO 2020]"},
		{"quote escaping", Term(nameField, `say "hi"`), `name:"say \"hi\""`},
		{"regexp value", Term(nameField, regexp.MustCompile("^Alice")), "name:/^Alice/"},
		{"regex helper", Regex(nameField, "^Alice"), "name:/^Alice/"},
		{"empty regex", Regex(nameField, ""), ""},
		{"range", Range(yearField, 2000, 2020), "publication_year:[2000 TO 2020]"},
		{"open-ended range", Range(yearField, 2000, nil), "publication_year:[2000 TO *]"},
		{"string range", Range(nameField, "a", "f"), `name:["a" TO "f"]`},
		{"list or", In(nameField, "Alice", "Bob"), `name:("Alice" OR "Bob")`},
		{"list and", AllOf(nameField, "Alice", "Bob"), `name:("Alice" AND "Bob")`},
		{"empty list", In(nameField), ""},
		{"negation", Term(nameField, "Alice").Not(), `-name:"Alice"`},
		{"double negation", Term(nameField, "Alice").Not().Not(), `name:"Alice"`},
		{"match all", MatchAll(), "*:*"},
		{"raw fragment", Raw("title:dune^2"), "title:dune^2"},
		{"empty query", Query{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryTimeValue(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2020, 6, 1, 13, 30, 0, 0, loc)

	got := Term(NewField("added"), ts).String()
	want := "added:2020-06-01T12:30:00Z"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestQueryConjunctions(t *testing.T) {
	q1 := Term(nameField, "Alice")
	q2 := Term(yearField, 2020)
	q3 := Term(statusField, statusPublished)

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"and", q1.And(q2), `name:"Alice" AND publication_year:2020`},
		{"or", q1.Or(q2), `name:"Alice" OR publication_year:2020`},
		{"three-way and", q1.And(q2.And(q3)), `name:"Alice" AND publication_year:2020 AND status:"published"`},
		{"negated clause in chain", q1.Not().And(q2), `-name:"Alice" AND publication_year:2020`},
		{"empty left identity", Query{}.And(q1), `name:"Alice"`},
		{"empty right identity", q1.And(Query{}), `name:"Alice"`},
		{"group", Group(q1), `(name:"Alice")`},
		{"empty group", Group(Query{}), ""},
		{"combined groups", Group(Group(q1).And(Group(q2))), `((name:"Alice") AND (publication_year:2020))`},
		{"negated group", Group(q1.Or(q2)).Not(), `-(name:"Alice" OR publication_year:2020)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryNotDoesNotMutate(t *testing.T) {
	q := Term(nameField, "Alice")
	neg := q.Not()

	if q.String() != `name:"Alice"` {
		t.Errorf("original query mutated by Not(): %q", q.String())
	}
	if neg.String() != `-name:"Alice"` {
		t.Errorf("negated query = %q", neg.String())
	}
}
