// Package ansi provides the generic ANSI SQL dialect definition, used when
// no vendor-specific dialect is configured.
package ansi

import (
	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the fallback dialect: standard quoting, schemas and catalogs both
// available, dynamic delimiter handling.
var ANSI = &dialect.Dialect{
	Name:             "ansi",
	DefaultSchema:    "public",
	SupportsCatalogs: true,
	SupportsSchemas:  true,
	CatalogSeparator: '.',
	SchemaSeparator:  '.',
	IdentifierCase:   dialect.CasePreserve,
	NewPolicy:        func() delimiter.Policy { return delimiter.NewDynamicPolicy() },
}
