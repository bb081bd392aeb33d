package completion

import "context"

// ForeignKey describes the target of a foreign key column.
type ForeignKey struct {
	ReferencedTable  TableRef
	ReferencedColumn string
}

// Metadata is the injected object-cache capability the resolver looks
// candidates up through. Implementations may serve from a cache with
// unspecified staleness; this package never invalidates or refreshes it.
// Any method may block on a database round-trip; the resolver calls each
// at most once per analysis and never retries.
type Metadata interface {
	// ListTables returns tables in the namespace, restricted to the given
	// object types ("TABLE", "VIEW", ...) when typeFilter is non-empty.
	ListTables(ctx context.Context, ns Namespace, typeFilter []string) ([]TableRef, error)

	// ListColumns returns the columns of a table in definition order.
	ListColumns(ctx context.Context, table TableRef) ([]string, error)

	// ListSchemas returns all schema names.
	ListSchemas(ctx context.Context) ([]string, error)

	// ListCatalogs returns all catalog (database) names.
	ListCatalogs(ctx context.Context) ([]string, error)

	// ListSequences returns sequence names in the namespace.
	ListSequences(ctx context.Context, ns Namespace) ([]string, error)

	// ListIndexes returns index names in the namespace.
	ListIndexes(ctx context.Context, ns Namespace) ([]string, error)

	// ResolveSynonym maps a synonym to its target table. ok is false when
	// the name is not a synonym.
	ResolveSynonym(ctx context.Context, table TableRef) (target TableRef, ok bool, err error)

	// ForeignKey returns the foreign key definition for a column, or nil
	// when the column is not a foreign key.
	ForeignKey(ctx context.Context, table TableRef, column string) (*ForeignKey, error)
}

// KeywordSource resolves a named keyword list, such as the drop options for
// an object type ("table.drop_options.txt"). Storage and format are the
// caller's concern; the core only consumes flat sets of strings by key.
type KeywordSource interface {
	Keywords(key string) ([]string, error)
}
