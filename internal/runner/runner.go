// Package runner executes SQL scripts statement by statement against a
// live connection, using the splitter to find statement boundaries and the
// dialect's delimiter policy to honor vendor constructs.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
	"github.com/querybench/querybench/pkg/lexer"
	"github.com/querybench/querybench/pkg/splitter"
)

// Result is the outcome of one executed statement.
type Result struct {
	// SQL is the statement text as it was sent, trimmed of surrounding
	// whitespace and the terminator.
	SQL string

	// Columns and Rows are set for statements that returned a result set.
	Columns []string
	Rows    [][]string

	// RowsAffected is set for statements without a result set.
	RowsAffected int64

	Duration time.Duration
	Err      error
}

// Runner executes scripts sequentially. It is not safe for concurrent use;
// each session gets its own runner.
type Runner struct {
	db      *sql.DB
	dialect *dialect.Dialect
	logger  *slog.Logger

	// ContinueOnError keeps executing after a failed statement instead of
	// stopping the script.
	ContinueOnError bool

	// MaxRows caps the rows fetched per result set. Zero means unlimited.
	MaxRows int

	// BaseDir resolves relative @include paths. Defaults to the current
	// working directory.
	BaseDir string

	// includeDepth guards against include cycles.
	includeDepth int
}

const maxIncludeDepth = 16

// New creates a runner for the given connection and dialect.
func New(db *sql.DB, d *dialect.Dialect) *Runner {
	return &Runner{
		db:      db,
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger replaces the discard logger.
func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// RunScript splits the script and executes every statement in order. The
// returned results are one per executed statement, in script order. A
// non-nil error means execution stopped early; the results gathered so far
// are still returned.
func (r *Runner) RunScript(ctx context.Context, script string) ([]Result, error) {
	sp := splitter.Splitter{LexOptions: r.lexOptions()}
	spans := sp.Split(script, r.newPolicy())

	var results []Result
	for _, span := range spans {
		stmt := strings.TrimSpace(span.Text(script))
		if stmt == "" || isClientDirective(stmt) {
			continue
		}

		if path, ok := includePath(stmt); ok {
			included, err := r.runInclude(ctx, path)
			results = append(results, included...)
			if err != nil && !r.ContinueOnError {
				return results, err
			}
			continue
		}

		res := r.runStatement(ctx, stmt)
		results = append(results, res)
		if res.Err != nil {
			r.logger.Error("statement failed", "error", res.Err, "sql", stmt)
			if !r.ContinueOnError {
				return results, res.Err
			}
		}
	}
	return results, nil
}

// RunFile reads and runs a script file, resolving its own includes
// relative to the file's directory.
func (r *Runner) RunFile(ctx context.Context, path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	prev := r.BaseDir
	r.BaseDir = filepath.Dir(path)
	defer func() { r.BaseDir = prev }()
	return r.RunScript(ctx, string(data))
}

func (r *Runner) runInclude(ctx context.Context, path string) ([]Result, error) {
	if r.includeDepth >= maxIncludeDepth {
		return nil, fmt.Errorf("include %q: nesting too deep", path)
	}
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}
	r.includeDepth++
	defer func() { r.includeDepth-- }()

	r.logger.Info("including script", "path", path)
	return r.RunFile(ctx, path)
}

// runStatement executes one statement, fetching a result set when the
// statement produces one.
func (r *Runner) runStatement(ctx context.Context, stmt string) Result {
	res := Result{SQL: stmt}
	start := time.Now()

	if returnsRows(stmt) {
		rows, err := r.db.QueryContext(ctx, stmt)
		if err != nil {
			res.Err = err
			res.Duration = time.Since(start)
			return res
		}
		res.Columns, res.Rows, res.Err = r.fetchRows(rows)
		res.Duration = time.Since(start)
		return res
	}

	exec, err := r.db.ExecContext(ctx, stmt)
	if err != nil {
		res.Err = err
	} else if n, affErr := exec.RowsAffected(); affErr == nil {
		res.RowsAffected = n
	}
	res.Duration = time.Since(start)
	return res
}

func (r *Runner) fetchRows(rows *sql.Rows) ([]string, [][]string, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		if r.MaxRows > 0 && len(out) >= r.MaxRows {
			r.logger.Warn("result truncated", "max_rows", r.MaxRows)
			break
		}
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return cols, out, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func (r *Runner) lexOptions() lexer.Options {
	if r.dialect != nil {
		return r.dialect.LexOptions
	}
	return lexer.Options{}
}

func (r *Runner) newPolicy() delimiter.Policy {
	if r.dialect != nil {
		return r.dialect.NewDelimiterPolicy()
	}
	return delimiter.NewDynamicPolicy()
}

// returnsRows guesses from the first word whether the statement produces a
// result set.
func returnsRows(stmt string) bool {
	word := firstWord(stmt)
	switch word {
	case "select", "with", "values", "show", "explain", "describe", "pragma", "table":
		return true
	}
	return false
}

// isClientDirective reports statements the splitter surfaces but that must
// not be sent to the server: delimiter changes and backslash meta-commands.
func isClientDirective(stmt string) bool {
	if strings.HasPrefix(stmt, `\`) {
		return true
	}
	return firstWord(stmt) == "delimiter"
}

// includePath extracts the target of an "@file" include statement.
func includePath(stmt string) (string, bool) {
	if !strings.HasPrefix(stmt, "@") {
		return "", false
	}
	path := strings.TrimSpace(stmt[1:])
	path = strings.Trim(path, `'"`)
	return path, path != ""
}

func firstWord(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
