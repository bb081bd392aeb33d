package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err, "an explicit but missing config file is an error")

	ResetConfig()
	cfg, err = LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConnection, cfg.Connection)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultMaxRows, cfg.MaxRows)
	assert.False(t, cfg.ContinueOnError)
	assert.NotEmpty(t, cfg.HistoryFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "querybench.yaml")
	cfgContent := `output: json
max_rows: 50
connections:
  default:
    dialect: sqlite
    database: test.db
  analytics:
    dialect: duckdb
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 50, cfg.MaxRows)
	assert.Equal(t, cfgPath, GetConfigFileUsed())

	conn, err := cfg.Active()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", conn.Dialect)
	assert.Equal(t, "test.db", conn.Database)

	_, ok := cfg.Connections["analytics"]
	assert.True(t, ok)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "querybench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0600))

	t.Setenv("QUERYBENCH_OUTPUT", "csv")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.OutputFormat, "env var should override config file")
}

func TestLoadConfigFlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "querybench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0600))

	t.Setenv("QUERYBENCH_OUTPUT", "csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	require.NoError(t, flags.Set("output", "markdown"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat, "flag should override env var and file")
}

func TestLoadConfigUnchangedFlagIgnored(t *testing.T) {
	ResetConfig()

	t.Setenv("QUERYBENCH_OUTPUT", "csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	// Not set, so Changed is false.

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.OutputFormat, "unset flag must not shadow the env var")
}

func TestLoadConfigKebabToSnake(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-rows", 0, "row cap")
	flags.Bool("continue-on-error", false, "keep going")
	require.NoError(t, flags.Set("max-rows", "7"))
	require.NoError(t, flags.Set("continue-on-error", "true"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxRows)
	assert.True(t, cfg.ContinueOnError)
}

func TestLoadConfigExpandsCredentials(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "querybench.yaml")
	cfgContent := `connections:
  default:
    dialect: postgres
    database: app
    user: svc
    password: ${QB_TEST_PASSWORD}
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))
	t.Setenv("QB_TEST_PASSWORD", "s3cret")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	conn, err := cfg.Active()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", conn.Password)
}

func TestLoadConfigRejectsBadConnection(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "querybench.yaml")
	cfgContent := `connections:
  default:
    dialect: oracle
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestValidateConnection(t *testing.T) {
	tests := []struct {
		name      string
		conn      ConnectionConfig
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "empty dialect",
			conn:    ConnectionConfig{},
			wantErr: false,
		},
		{
			name:    "sqlite",
			conn:    ConnectionConfig{Dialect: "sqlite", Database: "x.db"},
			wantErr: false,
		},
		{
			name:    "postgres with database",
			conn:    ConnectionConfig{Dialect: "postgres", Database: "app"},
			wantErr: false,
		},
		{
			name:      "postgres without target",
			conn:      ConnectionConfig{Dialect: "postgres"},
			wantErr:   true,
			errSubstr: "needs a dsn or a database",
		},
		{
			name:      "unknown dialect",
			conn:      ConnectionConfig{Dialect: "oracle"},
			wantErr:   true,
			errSubstr: "unknown dialect",
		},
		{
			name:      "port out of range",
			conn:      ConnectionConfig{Dialect: "mysql", Port: 70000},
			wantErr:   true,
			errSubstr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnection("default", tt.conn)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errSubstr != "" {
					assert.Contains(t, err.Error(), tt.errSubstr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActiveConnection(t *testing.T) {
	cfg := &Config{
		Connection: "analytics",
		Connections: map[string]ConnectionConfig{
			"analytics": {Dialect: "duckdb"},
		},
	}
	conn, err := cfg.Active()
	require.NoError(t, err)
	assert.Equal(t, "duckdb", conn.Dialect)

	cfg.Connection = "missing"
	_, err = cfg.Active()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		dialect  string
		expected string
	}{
		{"postgres", "pgx"},
		{"mysql", "mysql"},
		{"duckdb", "duckdb"},
		{"sqlite", "sqlite"},
		{"ansi", "sqlite"},
		{"", "sqlite"},
	}
	for _, tt := range tests {
		conn := ConnectionConfig{Dialect: tt.dialect}
		assert.Equal(t, tt.expected, conn.DriverName(), "dialect %q", tt.dialect)
	}
}

func TestBuildDSN(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		conn := ConnectionConfig{Dialect: "postgres", DSN: "postgres://u@h/db", Database: "other"}
		assert.Equal(t, "postgres://u@h/db", conn.BuildDSN())
	})

	t.Run("postgres url from fields", func(t *testing.T) {
		conn := ConnectionConfig{
			Dialect:  "postgres",
			Host:     "db.internal",
			Port:     5433,
			User:     "svc",
			Password: "pw",
			Database: "app",
			Schema:   "sales",
		}
		dsn := conn.BuildDSN()
		assert.True(t, strings.HasPrefix(dsn, "postgres://svc:pw@db.internal:5433/app"), dsn)
		assert.Contains(t, dsn, "search_path=sales")
	})

	t.Run("postgres defaults host and port", func(t *testing.T) {
		conn := ConnectionConfig{Dialect: "postgres", Database: "app"}
		assert.Contains(t, conn.BuildDSN(), "localhost:5432")
	})

	t.Run("mysql tcp address from fields", func(t *testing.T) {
		conn := ConnectionConfig{
			Dialect:  "mysql",
			Host:     "db.internal",
			Port:     3307,
			User:     "svc",
			Password: "pw",
			Database: "app",
		}
		assert.Equal(t, "svc:pw@tcp(db.internal:3307)/app", conn.BuildDSN())
	})

	t.Run("mysql defaults host and port", func(t *testing.T) {
		conn := ConnectionConfig{Dialect: "mysql", Database: "app"}
		assert.Equal(t, "tcp(localhost:3306)/app", conn.BuildDSN())
	})

	t.Run("file engines use the database path", func(t *testing.T) {
		conn := ConnectionConfig{Dialect: "sqlite", Database: "data/test.db"}
		assert.Equal(t, "data/test.db", conn.BuildDSN())
	})

	t.Run("empty database means in-memory", func(t *testing.T) {
		conn := ConnectionConfig{Dialect: "duckdb"}
		assert.Equal(t, ":memory:", conn.BuildDSN())
	})
}

func TestRedacted(t *testing.T) {
	conn := ConnectionConfig{
		Dialect:  "postgres",
		Host:     "h",
		User:     "svc",
		Password: "topsecret",
		Database: "app",
	}
	red := conn.Redacted()
	assert.NotContains(t, red, "topsecret")
	assert.Contains(t, red, "xxxxx")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("QB_TEST_ONE", "value_one")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single variable", input: "${QB_TEST_ONE}", expected: "value_one"},
		{name: "variable in path", input: "/p/${QB_TEST_ONE}/f", expected: "/p/value_one/f"},
		{name: "unset variable stays as-is", input: "${QB_UNSET_VAR}", expected: "${QB_UNSET_VAR}"},
		{name: "no variables", input: "plain", expected: "plain"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
