// Package dialect provides SQL dialect facts for the script analysis core:
// quoting rules, reserved words, namespace support and the delimiter policy
// to use when splitting scripts.
//
// Concrete dialect definitions are registered from pkg/dialects/*, which
// are pure Go with no database driver dependencies.
package dialect

import (
	"strings"

	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/lexer"
)

// IdentifierCase describes how a database stores unquoted identifiers.
type IdentifierCase int

const (
	// CasePreserve keeps identifiers as written.
	CasePreserve IdentifierCase = iota
	// CaseLower folds unquoted identifiers to lowercase (Postgres).
	CaseLower
	// CaseUpper folds unquoted identifiers to uppercase (Oracle, DB2).
	CaseUpper
)

// Apply folds s according to the case rule.
func (c IdentifierCase) Apply(s string) string {
	switch c {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// Dialect is a SQL dialect definition. Instances are immutable after
// registration and shared by all consumers.
type Dialect struct {
	Name string

	// DefaultSchema is the schema used when none is qualified
	// ("public" for Postgres, "main" for DuckDB).
	DefaultSchema string

	// SupportsCatalogs and SupportsSchemas describe the namespace levels
	// the dialect exposes for object lookups.
	SupportsCatalogs bool
	SupportsSchemas  bool

	// CatalogSeparator and SchemaSeparator join namespace qualifiers to
	// object names, almost always '.'.
	CatalogSeparator byte
	SchemaSeparator  byte

	// IdentifierCase is how the database stores unquoted identifiers,
	// used to normalize namespaces against live metadata.
	IdentifierCase IdentifierCase

	// LexOptions holds the dialect's quoting and comment rules.
	LexOptions lexer.Options

	// NewPolicy creates a fresh delimiter policy for one script scan.
	NewPolicy func() delimiter.Policy
}

// NewDelimiterPolicy returns a fresh policy instance, defaulting to the
// dynamic policy when the dialect does not define its own.
func (d *Dialect) NewDelimiterPolicy() delimiter.Policy {
	if d.NewPolicy != nil {
		return d.NewPolicy()
	}
	return delimiter.NewDynamicPolicy()
}

// reservedSet builds the lexer reserved-word map from a word list.
func reservedSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = true
	}
	return m
}

// WithReservedWords returns lexer options extended with the given words.
// Used by dialect definitions in pkg/dialects/*.
func WithReservedWords(opts lexer.Options, words ...string) lexer.Options {
	opts.Reserved = reservedSet(words)
	return opts
}
