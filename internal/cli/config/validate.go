package config

import (
	"fmt"
)

var knownDialects = map[string]bool{
	"": true, "ansi": true, "postgres": true, "mysql": true,
	"duckdb": true, "sqlite": true,
}

// ValidateConnection checks one named connection for obvious mistakes
// before any driver is opened.
func ValidateConnection(name string, c ConnectionConfig) error {
	if !knownDialects[c.Dialect] {
		return fmt.Errorf("connection %q: unknown dialect %q", name, c.Dialect)
	}
	if c.Dialect == "postgres" && c.DSN == "" && c.Database == "" {
		return fmt.Errorf("connection %q: postgres needs a dsn or a database name", name)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("connection %q: port %d out of range", name, c.Port)
	}
	return nil
}
