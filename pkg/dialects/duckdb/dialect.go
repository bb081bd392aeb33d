// Package duckdb provides the DuckDB dialect definition.
package duckdb

import (
	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
	"github.com/querybench/querybench/pkg/lexer"
)

func init() {
	dialect.Register(DuckDB)
}

var duckdbReservedWords = []string{
	"analyse", "analyze", "asymmetric", "both", "check", "collate",
	"column", "constraint", "default", "deferrable", "describe", "do",
	"fetch", "for", "foreign", "grant", "ilike", "initially", "leading",
	"only", "pivot", "placing", "primary", "qualify", "references",
	"returning", "some", "symmetric", "to", "trailing", "unique",
	"unpivot", "using", "variadic",
}

// DuckDB follows Postgres quoting but keeps whole statements terminated by
// ";" only; there is no inline COPY payload or atomic body to special-case.
var DuckDB = &dialect.Dialect{
	Name:             "duckdb",
	DefaultSchema:    "main",
	SupportsCatalogs: true,
	SupportsSchemas:  true,
	CatalogSeparator: '.',
	SchemaSeparator:  '.',
	IdentifierCase:   dialect.CasePreserve,
	LexOptions: dialect.WithReservedWords(lexer.Options{
		NestedComments: true,
	}, duckdbReservedWords...),
	NewPolicy: func() delimiter.Policy { return delimiter.NewDynamicPolicy() },
}
