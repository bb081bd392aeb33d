package catalog

// querySet is the per-dialect SQL behind the metadata lookups. An empty
// string disables the lookup for that dialect.
type querySet struct {
	tables          string
	tablesInSchema  string
	tablesInCatalog string

	columns         string
	columnsInSchema string

	schemas  string
	catalogs string

	sequences         string
	sequencesInSchema string

	indexes         string
	indexesInSchema string

	foreignKey string
}

func queriesFor(dialectName string) querySet {
	switch dialectName {
	case "postgres":
		return postgresQueries
	case "mysql":
		return mysqlQueries
	case "duckdb":
		return duckdbQueries
	case "sqlite":
		return sqliteQueries
	}
	return ansiQueries
}

var postgresQueries = querySet{
	tables: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema not in ('pg_catalog', 'information_schema')
		order by table_schema, table_name`,
	tablesInSchema: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema = $1
		order by table_name`,
	columns: `select column_name
		from information_schema.columns
		where table_name = $1
		order by ordinal_position`,
	columnsInSchema: `select column_name
		from information_schema.columns
		where table_name = $1 and table_schema = $2
		order by ordinal_position`,
	schemas: `select schema_name
		from information_schema.schemata
		where schema_name not in ('pg_catalog', 'information_schema')
		order by schema_name`,
	catalogs: `select datname from pg_database
		where not datistemplate
		order by datname`,
	sequences: `select sequence_name
		from information_schema.sequences
		order by sequence_name`,
	sequencesInSchema: `select sequence_name
		from information_schema.sequences
		where sequence_schema = $1
		order by sequence_name`,
	indexes: `select indexname from pg_indexes
		where schemaname not in ('pg_catalog', 'information_schema')
		order by indexname`,
	indexesInSchema: `select indexname from pg_indexes
		where schemaname = $1
		order by indexname`,
	foreignKey: `select ccu.table_schema, ccu.table_name, ccu.column_name
		from information_schema.key_column_usage kcu
		join information_schema.referential_constraints rc
			on rc.constraint_name = kcu.constraint_name
			and rc.constraint_schema = kcu.constraint_schema
		join information_schema.constraint_column_usage ccu
			on ccu.constraint_name = rc.unique_constraint_name
			and ccu.constraint_schema = rc.unique_constraint_schema
		where kcu.table_name = $1 and kcu.column_name = $2
		limit 1`,
}

// MySQL has no schema/catalog split: its "databases" fill both roles, so
// the catalog listing reuses the schemata view.
var mysqlQueries = querySet{
	tables: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema not in ('mysql', 'information_schema', 'performance_schema', 'sys')
		order by table_schema, table_name`,
	tablesInSchema: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema = ?
		order by table_name`,
	tablesInCatalog: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema = ?
		order by table_name`,
	columns: `select column_name
		from information_schema.columns
		where table_name = ?
		order by ordinal_position`,
	columnsInSchema: `select column_name
		from information_schema.columns
		where table_name = ? and table_schema = ?
		order by ordinal_position`,
	schemas: `select schema_name
		from information_schema.schemata
		order by schema_name`,
	catalogs: `select schema_name
		from information_schema.schemata
		order by schema_name`,
	indexes: `select distinct index_name
		from information_schema.statistics
		order by index_name`,
	indexesInSchema: `select distinct index_name
		from information_schema.statistics
		where table_schema = ?
		order by index_name`,
	foreignKey: `select kcu.referenced_table_schema, kcu.referenced_table_name, kcu.referenced_column_name
		from information_schema.key_column_usage kcu
		where kcu.table_name = ? and kcu.column_name = ?
			and kcu.referenced_table_name is not null
		limit 1`,
}

var duckdbQueries = querySet{
	tables: `select table_schema, table_name, table_type
		from information_schema.tables
		order by table_schema, table_name`,
	tablesInSchema: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema = ?
		order by table_name`,
	columns: `select column_name
		from information_schema.columns
		where table_name = ?
		order by ordinal_position`,
	columnsInSchema: `select column_name
		from information_schema.columns
		where table_name = ? and table_schema = ?
		order by ordinal_position`,
	schemas: `select schema_name
		from information_schema.schemata
		order by schema_name`,
	catalogs: `select distinct catalog_name
		from information_schema.schemata
		order by catalog_name`,
	sequences: `select sequence_name from duckdb_sequences()
		order by sequence_name`,
	sequencesInSchema: `select sequence_name from duckdb_sequences()
		where schema_name = ?
		order by sequence_name`,
	indexes: `select index_name from duckdb_indexes()
		order by index_name`,
	indexesInSchema: `select index_name from duckdb_indexes()
		where schema_name = ?
		order by index_name`,
}

// SQLite exposes its catalog through sqlite_master, with a single implicit
// "main" schema.
var sqliteQueries = querySet{
	tables: `select 'main', name, upper(type)
		from sqlite_master
		where type in ('table', 'view') and name not like 'sqlite_%'
		order by name`,
	tablesInSchema: `select 'main', name, upper(type)
		from sqlite_master
		where type in ('table', 'view') and name not like 'sqlite_%' and 'main' = ?
		order by name`,
	columns: `select name from pragma_table_info(?)
		order by cid`,
	columnsInSchema: `select name from pragma_table_info(?)
		where ? is not null
		order by cid`,
	schemas: `select 'main'`,
	indexes: `select name from sqlite_master
		where type = 'index'
		order by name`,
	foreignKey: `select 'main', fk."table", fk."to"
		from pragma_foreign_key_list(?) fk
		where fk."from" = ?
		limit 1`,
}

var ansiQueries = querySet{
	tables: `select table_schema, table_name, table_type
		from information_schema.tables
		order by table_schema, table_name`,
	tablesInSchema: `select table_schema, table_name, table_type
		from information_schema.tables
		where table_schema = ?
		order by table_name`,
	columns: `select column_name
		from information_schema.columns
		where table_name = ?
		order by ordinal_position`,
	columnsInSchema: `select column_name
		from information_schema.columns
		where table_name = ? and table_schema = ?
		order by ordinal_position`,
	schemas: `select schema_name
		from information_schema.schemata
		order by schema_name`,
}
