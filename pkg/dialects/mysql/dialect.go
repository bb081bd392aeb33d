// Package mysql provides the MySQL/MariaDB dialect definition.
package mysql

import (
	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
	"github.com/querybench/querybench/pkg/lexer"
)

func init() {
	dialect.Register(MySQL)
}

var mysqlReservedWords = []string{
	"accessible", "asensitive", "before", "bigint", "binary", "blob",
	"both", "call", "change", "char", "character", "check", "collate",
	"column", "condition", "constraint", "continue", "convert", "cursor",
	"database", "databases", "declare", "default", "delayed", "describe",
	"deterministic", "div", "double", "each", "elseif", "enclosed",
	"escaped", "exit", "explain", "fetch", "float", "for", "force",
	"foreign", "fulltext", "grant", "high_priority", "if", "ignore",
	"index", "infile", "inout", "int", "integer", "interval", "iterate",
	"key", "keys", "kill", "leave", "linear", "lines", "load", "lock",
	"long", "loop", "low_priority", "match", "modifies", "natural",
	"no_write_to_binlog", "numeric", "optimize", "option", "optionally",
	"out", "outfile", "precision", "primary", "procedure", "purge",
	"read", "reads", "real", "references", "regexp", "release", "rename",
	"repeat", "replace", "require", "restrict", "return", "revoke",
	"rlike", "schema", "schemas", "sensitive", "separator", "show",
	"smallint", "spatial", "specific", "sql", "sqlexception", "sqlstate",
	"sqlwarning", "ssl", "starting", "straight_join", "terminated",
	"tinyint", "to", "trigger", "undo", "unique", "unlock", "unsigned",
	"usage", "use", "using", "varbinary", "varchar", "varying", "while",
	"write", "xor", "zerofill",
}

// MySQL is the MySQL dialect: backtick identifier quoting, databases act
// as catalogs, and the dynamic policy handles the DELIMITER command used
// around stored-routine bodies.
var MySQL = &dialect.Dialect{
	Name:             "mysql",
	DefaultSchema:    "",
	SupportsCatalogs: true,
	SupportsSchemas:  false,
	CatalogSeparator: '.',
	SchemaSeparator:  '.',
	IdentifierCase:   dialect.CasePreserve,
	LexOptions: dialect.WithReservedWords(lexer.Options{
		BacktickQuoting: true,
	}, mysqlReservedWords...),
	NewPolicy: func() delimiter.Policy { return delimiter.NewDynamicPolicy() },
}
