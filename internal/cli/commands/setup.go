// Package commands implements the querybench subcommands.
package commands

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/querybench/querybench/internal/catalog"
	"github.com/querybench/querybench/internal/cli/config"
	"github.com/querybench/querybench/internal/keywords"
	"github.com/querybench/querybench/internal/runner"
	"github.com/querybench/querybench/pkg/completion"
	"github.com/querybench/querybench/pkg/dialect"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Conn    config.ConnectionConfig
	Logger  *slog.Logger
	DB      *sql.DB
	Dialect *dialect.Dialect
	Meta    *catalog.Cache
	Runner  *runner.Runner
}

// NewCommandContext opens the configured connection and wires the runner
// and metadata cache. Returns the context and a cleanup function that must
// be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	conn, err := cfg.Active()
	if err != nil {
		return nil, nil, err
	}

	d, ok := dialect.Get(dialectName(conn))
	if !ok {
		return nil, nil, fmt.Errorf("dialect %q is not registered", dialectName(conn))
	}

	db, err := sql.Open(conn.DriverName(), conn.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open connection: %w", err)
	}
	logger.Debug("connection opened", "dialect", d.Name, "dsn", conn.Redacted())

	store := catalog.NewStore(db, d.Name)
	store.SetLogger(logger)
	meta := catalog.NewCache(store)

	run := runner.New(db, d)
	run.SetLogger(logger)
	run.ContinueOnError = cfg.ContinueOnError
	run.MaxRows = cfg.MaxRows

	cleanup := func() {
		_ = db.Close()
	}

	return &CommandContext{
		Cfg:     cfg,
		Conn:    conn,
		Logger:  logger,
		DB:      db,
		Dialect: d,
		Meta:    meta,
		Runner:  run,
	}, cleanup, nil
}

// Completer builds the completion engine for this session.
func (cc *CommandContext) Completer() (*completion.Analyzer, *completion.Resolver) {
	analyzer := completion.NewAnalyzer(cc.Dialect)
	resolver := completion.NewResolver(cc.Meta, keywords.NewSource(), cc.Dialect)
	resolver.SetLogger(cc.Logger)
	return analyzer, resolver
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Connection:      getEnvOrDefault("QUERYBENCH_CONNECTION", config.DefaultConnection),
		OutputFormat:    getEnvOrDefault("QUERYBENCH_OUTPUT", config.DefaultOutput),
		Verbose:         os.Getenv("QUERYBENCH_VERBOSE") == "true",
		MaxRows:         config.DefaultMaxRows,
		ContinueOnError: os.Getenv("QUERYBENCH_CONTINUE_ON_ERROR") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// dialectName maps the connection's dialect to a registered dialect,
// falling back to ANSI.
func dialectName(conn config.ConnectionConfig) string {
	switch conn.Dialect {
	case "postgres", "mysql", "duckdb":
		return conn.Dialect
	}
	return "ansi"
}
