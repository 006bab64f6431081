package solr

import "fmt"

// Field identifies a queryable Solr field. The logical name is what callers
// use in code and output; the alias is the actual field name in the Solr
// schema. For most fields the two are identical.
type Field struct {
	name  string
	alias string
}

// NewField creates a field whose logical name matches its schema name.
func NewField(name string) Field {
	return Field{name: name, alias: name}
}

// WithAlias returns a copy of the field mapped to a different schema name.
func (f Field) WithAlias(alias string) Field {
	f.alias = alias
	return f
}

// Name returns the logical field name.
func (f Field) Name() string {
	return f.name
}

// Alias returns the field name used in the Solr schema.
func (f Field) Alias() string {
	return f.alias
}

// String returns the logical field name.
func (f Field) String() string {
	return f.name
}

// IsZero reports whether the field is the zero value.
func (f Field) IsZero() bool {
	return f.name == "" && f.alias == ""
}

// FieldSet is a fixed set of mappable fields for a collection. It resolves
// fields by logical name and reverse-resolves them from their schema alias.
type FieldSet struct {
	fields []Field
}

// NewFieldSet creates a field set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	return FieldSet{fields: fields}
}

// Fields returns the fields in declaration order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// ByName looks up a field by its logical name.
func (s FieldSet) ByName(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FromAlias returns the field whose schema alias matches the given name.
func (s FieldSet) FromAlias(alias string) (Field, error) {
	for _, f := range s.fields {
		if f.alias == alias {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("no field matches alias %q", alias)
}
