// Package completion classifies cursor positions inside partially-typed SQL
// and resolves them into candidate lists for an auto-completion popup.
//
// The analysis is lexical and best effort: it works on syntactically
// invalid, mid-typing text without a grammar, and malformed input degrades
// to NoContext or an empty candidate list rather than an error.
package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/dialect"
)

// Context classifies what kind of object should be offered at the cursor.
type Context int

// The closed set of completion contexts.
const (
	NoContext Context = iota
	TableList
	ColumnList
	TableOrColumnList
	FromList
	KeywordList
	SchemaList
	CatalogList
	SequenceList
	IndexList
	ValueList
	StatementParameter
)

var contextNames = map[Context]string{
	NoContext:          "none",
	TableList:          "tables",
	ColumnList:         "columns",
	TableOrColumnList:  "tables or columns",
	FromList:           "from",
	KeywordList:        "keywords",
	SchemaList:         "schemas",
	CatalogList:        "catalogs",
	SequenceList:       "sequences",
	IndexList:          "indexes",
	ValueList:          "values",
	StatementParameter: "parameters",
}

func (c Context) String() string {
	if n, ok := contextNames[c]; ok {
		return n
	}
	return "none"
}

// Namespace scopes an object lookup to a schema and/or catalog. Both parts
// are optional and independently settable; a namespace is valid when at
// least one is set. Namespaces are never mutated after construction except
// through the one-shot Normalized case adjustment.
type Namespace struct {
	Schema  *string
	Catalog *string
}

// SchemaNamespace returns a namespace scoped to the given schema.
func SchemaNamespace(schema string) Namespace {
	return Namespace{Schema: &schema}
}

// CatalogNamespace returns a namespace scoped to the given catalog.
func CatalogNamespace(catalog string) Namespace {
	return Namespace{Catalog: &catalog}
}

// Valid reports whether at least one of schema or catalog is set.
func (n Namespace) Valid() bool {
	return n.Schema != nil || n.Catalog != nil
}

// Normalized returns a copy with both parts folded to the case the database
// stores unquoted identifiers in. Applied once per analysis, just before
// the namespace is compared against live metadata.
func (n Namespace) Normalized(c dialect.IdentifierCase) Namespace {
	var out Namespace
	if n.Schema != nil {
		s := c.Apply(*n.Schema)
		out.Schema = &s
	}
	if n.Catalog != nil {
		s := c.Apply(*n.Catalog)
		out.Catalog = &s
	}
	return out
}

func (n Namespace) String() string {
	var parts []string
	if n.Catalog != nil {
		parts = append(parts, *n.Catalog)
	}
	if n.Schema != nil {
		parts = append(parts, *n.Schema)
	}
	return strings.Join(parts, ".")
}

// TableRef identifies a table-like object, optionally namespace qualified.
type TableRef struct {
	Namespace Namespace
	Name      string
}

func (t TableRef) String() string {
	if ns := t.Namespace.String(); ns != "" {
		return ns + "." + t.Name
	}
	return t.Name
}

// FKLookup describes a value-completion probe: the cursor follows a
// comparison or multi-value operator applied to a column that may be a
// foreign key, in which case a "look up value from the referenced table"
// marker is offered instead of a plain value list.
type FKLookup struct {
	Table  TableRef
	Column string

	// MultiSelect is true for IN / ANY / ALL, where several referenced
	// values can be picked at once.
	MultiSelect bool
}
