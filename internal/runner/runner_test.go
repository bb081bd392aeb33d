package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querybench/querybench/pkg/delimiter"
	"github.com/querybench/querybench/pkg/dialect"
)

func newMockRunner(t *testing.T) (*Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, nil), mock
}

func TestRunScript(t *testing.T) {
	r, mock := newMockRunner(t)

	mock.ExpectExec("create table t").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("insert into t").WillReturnResult(sqlmock.NewResult(1, 2))
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "alice").
		AddRow(2, "bob")
	mock.ExpectQuery("select id, name from t").WillReturnRows(rows)

	results, err := r.RunScript(context.Background(),
		"create table t (id int, name text);\n"+
			"insert into t values (1, 'alice'), (2, 'bob');\n"+
			"select id, name from t;")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(2), results[1].RowsAffected)
	assert.Equal(t, []string{"id", "name"}, results[2].Columns)
	require.Len(t, results[2].Rows, 2)
	assert.Equal(t, []string{"1", "alice"}, results[2].Rows[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunScriptStopsOnError(t *testing.T) {
	r, mock := newMockRunner(t)

	mock.ExpectExec("insert into t").WillReturnError(assert.AnError)

	results, err := r.RunScript(context.Background(),
		"insert into t values (1);\nselect 1;")
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.NoError(t, mock.ExpectationsWereMet(), "second statement must not run")
}

func TestRunScriptContinueOnError(t *testing.T) {
	r, mock := newMockRunner(t)
	r.ContinueOnError = true

	mock.ExpectExec("insert into t").WillReturnError(assert.AnError)
	mock.ExpectQuery("select 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	results, err := r.RunScript(context.Background(),
		"insert into t values (1);\nselect 1;")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestRunScriptSkipsClientDirectives(t *testing.T) {
	r, mock := newMockRunner(t)

	mock.ExpectExec("create procedure").WillReturnResult(sqlmock.NewResult(0, 0))

	results, err := r.RunScript(context.Background(),
		"DELIMITER //\ncreate procedure p() select 1\n//\nDELIMITER ;\n")
	require.NoError(t, err)
	require.Len(t, results, 1, "DELIMITER directives must not reach the server")
	assert.Contains(t, results[0].SQL, "create procedure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunScriptSkipsBackslashCommands(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	d := &dialect.Dialect{
		Name:      "postgres",
		NewPolicy: func() delimiter.Policy { return delimiter.NewPostgresPolicy() },
	}
	r := New(db, d)

	rows := sqlmock.NewRows([]string{"n"}).AddRow(1)
	mock.ExpectQuery("select 1").WillReturnRows(rows)

	results, err := r.RunScript(context.Background(), "\\timing on\nselect 1;\n")
	require.NoError(t, err)
	require.Len(t, results, 1, "backslash commands must not reach the server")
	assert.Equal(t, "select 1", results[0].SQL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunScriptMaxRows(t *testing.T) {
	r, mock := newMockRunner(t)
	r.MaxRows = 2

	rows := sqlmock.NewRows([]string{"n"}).AddRow(1).AddRow(2).AddRow(3)
	mock.ExpectQuery("select n from t").WillReturnRows(rows)

	results, err := r.RunScript(context.Background(), "select n from t;")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Rows, 2, "result must be truncated at MaxRows")
}

func TestRunScriptNullFormatting(t *testing.T) {
	r, mock := newMockRunner(t)

	rows := sqlmock.NewRows([]string{"v"}).AddRow(nil)
	mock.ExpectQuery("select v from t").WillReturnRows(rows)

	results, err := r.RunScript(context.Background(), "select v from t;")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, [][]string{{"NULL"}}, results[0].Rows)
}

func TestRunFileWithInclude(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "inner.sql")
	outer := filepath.Join(dir, "outer.sql")
	require.NoError(t, os.WriteFile(inner, []byte("insert into t values (1);\n"), 0o644))
	require.NoError(t, os.WriteFile(outer, []byte("@inner.sql\nselect 1;\n"), 0o644))

	r, mock := newMockRunner(t)
	mock.ExpectExec("insert into t").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("select 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	results, err := r.RunFile(context.Background(), outer)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].SQL, "insert into t")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunFileMissing(t *testing.T) {
	r, _ := newMockRunner(t)
	_, err := r.RunFile(context.Background(), filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")
}

func TestRunIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.sql")
	require.NoError(t, os.WriteFile(path, []byte("@loop.sql\n"), 0o644))

	r, _ := newMockRunner(t)
	_, err := r.RunFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		stmt     string
		expected bool
	}{
		{"select 1", true},
		{"SELECT 1", true},
		{"with x as (select 1) select * from x", true},
		{"explain select 1", true},
		{"show tables", true},
		{"values (1)", true},
		{"insert into t values (1)", false},
		{"update t set a = 1", false},
		{"create table t (a int)", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, returnsRows(tt.stmt), "returnsRows(%q)", tt.stmt)
	}
}

func TestIncludePath(t *testing.T) {
	tests := []struct {
		stmt     string
		path     string
		expected bool
	}{
		{"@setup.sql", "setup.sql", true},
		{`@"my scripts/setup.sql"`, "my scripts/setup.sql", true},
		{"@ setup.sql", "setup.sql", true},
		{"@", "", false},
		{"select 1", "", false},
	}
	for _, tt := range tests {
		path, ok := includePath(tt.stmt)
		assert.Equal(t, tt.expected, ok, "includePath(%q)", tt.stmt)
		assert.Equal(t, tt.path, path, "includePath(%q)", tt.stmt)
	}
}
