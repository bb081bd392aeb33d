// Package config provides configuration management for the querybench CLI.
//
// Configuration is merged from defaults, an optional YAML file, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds all CLI configuration options.
type Config struct {
	// Connection names the entry of Connections to use.
	Connection string `koanf:"connection"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// MaxRows caps the rows fetched per result set. Zero means unlimited.
	MaxRows int `koanf:"max_rows"`

	// ContinueOnError keeps a script running after a failed statement.
	ContinueOnError bool `koanf:"continue_on_error"`

	// HistoryFile stores REPL input history.
	HistoryFile string `koanf:"history_file"`

	Connections map[string]ConnectionConfig `koanf:"connections"`
}

// ConnectionConfig describes one named database connection.
type ConnectionConfig struct {
	// Dialect selects lexical rules, delimiter handling and metadata
	// queries: "postgres", "mysql", "duckdb", "sqlite" or "ansi".
	Dialect string `koanf:"dialect"`

	// DSN, when set, is passed to the driver verbatim and the individual
	// fields below are ignored.
	DSN string `koanf:"dsn"`

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	Schema   string `koanf:"schema"`

	Options map[string]string `koanf:"options"`
}

// Default configuration values.
const (
	DefaultConnection = "default"
	DefaultOutput     = "table"
	DefaultMaxRows    = 10000
	DefaultHistory    = ".querybench_history"
)

// Active returns the selected connection config.
func (c *Config) Active() (ConnectionConfig, error) {
	name := c.Connection
	if name == "" {
		name = DefaultConnection
	}
	conn, ok := c.Connections[name]
	if !ok {
		return ConnectionConfig{}, fmt.Errorf("connection %q is not configured", name)
	}
	return conn, nil
}

// DriverName maps the dialect to the database/sql driver to open.
func (c ConnectionConfig) DriverName() string {
	switch c.Dialect {
	case "postgres":
		return "pgx"
	case "duckdb":
		return "duckdb"
	case "sqlite", "ansi", "":
		return "sqlite"
	}
	return c.Dialect
}

// BuildDSN assembles the driver DSN from the individual fields, unless an
// explicit DSN was configured.
func (c ConnectionConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Dialect {
	case "postgres":
		u := url.URL{
			Scheme: "postgres",
			Host:   hostPort(c.Host, c.Port, 5432),
			Path:   "/" + c.Database,
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		q := url.Values{}
		for k, v := range c.Options {
			q.Set(k, v)
		}
		if c.Schema != "" {
			q.Set("search_path", c.Schema)
		}
		u.RawQuery = q.Encode()
		return u.String()
	case "mysql":
		var b strings.Builder
		if c.User != "" {
			b.WriteString(c.User)
			if c.Password != "" {
				b.WriteString(":" + c.Password)
			}
			b.WriteString("@")
		}
		fmt.Fprintf(&b, "tcp(%s)/%s", hostPort(c.Host, c.Port, 3306), c.Database)
		q := url.Values{}
		for k, v := range c.Options {
			q.Set(k, v)
		}
		if len(q) > 0 {
			b.WriteString("?" + q.Encode())
		}
		return b.String()
	default:
		// File-backed engines take the database path directly; empty
		// means in-memory.
		if c.Database == "" {
			return ":memory:"
		}
		return c.Database
	}
}

func hostPort(host string, port, def int) string {
	if host == "" {
		host = "localhost"
	}
	if port == 0 {
		port = def
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Redacted returns the DSN with any password masked, for logs.
func (c ConnectionConfig) Redacted() string {
	dsn := c.BuildDSN()
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
			return u.String()
		}
	}
	if c.Password != "" {
		return strings.ReplaceAll(dsn, c.Password, "xxxxx")
	}
	return dsn
}
