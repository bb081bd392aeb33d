// Package postgres provides the PostgreSQL dialect definition.
// This package is pure Go with no database driver dependencies, so tools
// that only need dialect facts avoid the overhead of a connection stack.
package postgres

import (
	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
	"github.com/querybench/querybench/pkg/lexer"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words beyond
// the ANSI core. This is a manually maintained list of frequently
// problematic identifiers; for a complete list use pg_get_keywords().
var postgresReservedWords = []string{
	"analyse", "analyze", "array", "asymmetric", "authorization", "binary",
	"both", "check", "collate", "column", "concurrently", "constraint",
	"current_catalog", "current_date", "current_role", "current_schema",
	"current_time", "current_timestamp", "current_user", "default",
	"deferrable", "do", "fetch", "for", "foreign", "freeze", "grant",
	"ilike", "initially", "isnull", "leading", "localtime", "localtimestamp",
	"natural", "notnull", "only", "overlaps", "placing", "primary",
	"references", "returning", "session_user", "similar", "some",
	"symmetric", "to", "trailing", "unique", "user", "using", "variadic",
	"verbose", "window",
}

// Postgres is the PostgreSQL dialect: nested block comments, lowercase
// identifier folding, and the delimiter policy that keeps COPY payloads
// and BEGIN ATOMIC bodies in one statement.
var Postgres = &dialect.Dialect{
	Name:             "postgres",
	DefaultSchema:    "public",
	SupportsCatalogs: true,
	SupportsSchemas:  true,
	CatalogSeparator: '.',
	SchemaSeparator:  '.',
	IdentifierCase:   dialect.CaseLower,
	LexOptions: dialect.WithReservedWords(lexer.Options{
		NestedComments: true,
	}, postgresReservedWords...),
	NewPolicy: func() delimiter.Policy { return delimiter.NewPostgresPolicy() },
}
