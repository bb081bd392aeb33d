// Package catalog implements the completion metadata capability over a
// live database connection, using the information schema (or the engine's
// native catalog views) of the connected dialect.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/querybench/querybench/pkg/completion"
)

// Store answers metadata lookups with SQL queries against the connected
// database. Queries are chosen per dialect at construction time. A Store
// is safe for concurrent use; the underlying *sql.DB pools connections.
type Store struct {
	db      *sql.DB
	queries querySet
	logger  *slog.Logger
}

// NewStore creates a store for the named dialect. Unknown dialect names
// fall back to plain information-schema queries.
func NewStore(db *sql.DB, dialectName string) *Store {
	return &Store{
		db:      db,
		queries: queriesFor(dialectName),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger replaces the discard logger.
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// ListTables returns tables and views visible in the namespace. The type
// filter matches the normalized object type ("TABLE", "VIEW",
// "MATERIALIZED VIEW").
func (s *Store) ListTables(ctx context.Context, ns completion.Namespace, typeFilter []string) ([]completion.TableRef, error) {
	q := s.queries.tables
	args := []any{}
	if ns.Schema != nil {
		q = s.queries.tablesInSchema
		args = append(args, *ns.Schema)
	} else if ns.Catalog != nil && s.queries.tablesInCatalog != "" {
		q = s.queries.tablesInCatalog
		args = append(args, *ns.Catalog)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []completion.TableRef
	for rows.Next() {
		var schema, name, typ string
		if err := rows.Scan(&schema, &name, &typ); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		if !typeMatches(typ, typeFilter) {
			continue
		}
		out = append(out, completion.TableRef{
			Namespace: completion.SchemaNamespace(schema),
			Name:      name,
		})
	}
	return out, rows.Err()
}

// ListColumns returns the columns of a table in definition order.
func (s *Store) ListColumns(ctx context.Context, table completion.TableRef) ([]string, error) {
	q := s.queries.columns
	args := []any{table.Name}
	if table.Namespace.Schema != nil {
		q = s.queries.columnsInSchema
		args = append(args, *table.Namespace.Schema)
	}
	return s.stringColumn(ctx, "list columns", q, args...)
}

// ListSchemas returns all schema names.
func (s *Store) ListSchemas(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, "list schemas", s.queries.schemas)
}

// ListCatalogs returns all catalog names, or nothing when the engine has
// no catalog concept.
func (s *Store) ListCatalogs(ctx context.Context) ([]string, error) {
	if s.queries.catalogs == "" {
		return nil, nil
	}
	return s.stringColumn(ctx, "list catalogs", s.queries.catalogs)
}

// ListSequences returns sequence names in the namespace, or nothing when
// the engine has no sequences.
func (s *Store) ListSequences(ctx context.Context, ns completion.Namespace) ([]string, error) {
	if s.queries.sequences == "" {
		return nil, nil
	}
	q := s.queries.sequences
	args := []any{}
	if ns.Schema != nil && s.queries.sequencesInSchema != "" {
		q = s.queries.sequencesInSchema
		args = append(args, *ns.Schema)
	}
	return s.stringColumn(ctx, "list sequences", q, args...)
}

// ListIndexes returns index names in the namespace.
func (s *Store) ListIndexes(ctx context.Context, ns completion.Namespace) ([]string, error) {
	if s.queries.indexes == "" {
		return nil, nil
	}
	q := s.queries.indexes
	args := []any{}
	if ns.Schema != nil && s.queries.indexesInSchema != "" {
		q = s.queries.indexesInSchema
		args = append(args, *ns.Schema)
	}
	return s.stringColumn(ctx, "list indexes", q, args...)
}

// ResolveSynonym reports that the name is not a synonym. None of the
// supported engines has synonyms.
func (s *Store) ResolveSynonym(ctx context.Context, table completion.TableRef) (completion.TableRef, bool, error) {
	return completion.TableRef{}, false, nil
}

// ForeignKey returns the foreign key definition for a column, or nil when
// the column is not a foreign key.
func (s *Store) ForeignKey(ctx context.Context, table completion.TableRef, column string) (*completion.ForeignKey, error) {
	if s.queries.foreignKey == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, s.queries.foreignKey, table.Name, column)
	var schema, refTable, refColumn string
	switch err := row.Scan(&schema, &refTable, &refColumn); err {
	case nil:
		return &completion.ForeignKey{
			ReferencedTable: completion.TableRef{
				Namespace: completion.SchemaNamespace(schema),
				Name:      refTable,
			},
			ReferencedColumn: refColumn,
		}, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, fmt.Errorf("foreign key lookup: %w", err)
	}
}

func (s *Store) stringColumn(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// typeMatches folds the engine's table_type spelling ("BASE TABLE") to the
// normalized filter vocabulary and applies the filter.
func typeMatches(engineType string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	typ := strings.ToUpper(engineType)
	if typ == "BASE TABLE" || typ == "LOCAL TEMPORARY" {
		typ = "TABLE"
	}
	for _, f := range filter {
		if typ == strings.ToUpper(f) {
			return true
		}
	}
	return false
}
