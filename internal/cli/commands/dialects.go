package commands

// Dialects linked into the binary; each registers itself on import.
import (
	_ "github.com/querybench/querybench/pkg/dialects/ansi"
	_ "github.com/querybench/querybench/pkg/dialects/duckdb"
	_ "github.com/querybench/querybench/pkg/dialects/mysql"
	_ "github.com/querybench/querybench/pkg/dialects/postgres"
)
