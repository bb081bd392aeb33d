package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/querybench/querybench/internal/runner"
)

// renderResult writes one statement result in the requested format.
func renderResult(w io.Writer, res runner.Result, format string) error {
	if res.Err != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", res.Err)
		return nil
	}
	if res.Columns == nil {
		_, _ = fmt.Fprintf(w, "OK (%d rows affected, %s)\n", res.RowsAffected, res.Duration.Round(time.Millisecond))
		return nil
	}

	switch format {
	case "json":
		return renderJSON(w, res)
	case "csv":
		return renderCSV(w, res)
	case "md", "markdown":
		return renderMarkdown(w, res)
	default:
		return renderTable(w, res)
	}
}

func renderTable(w io.Writer, res runner.Result) error {
	if len(res.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range res.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = v
		}
		t.AppendRow(out)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	return nil
}

func renderJSON(w io.Writer, res runner.Result) error {
	records := make([]map[string]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		rec := make(map[string]string, len(res.Columns))
		for i, col := range res.Columns {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, res runner.Result) error {
	_, _ = fmt.Fprintln(w, strings.Join(res.Columns, ","))
	for _, row := range res.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(v)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, res runner.Result) error {
	if len(res.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintln(w, "| "+strings.Join(res.Columns, " | ")+" |")
	seps := make([]string, len(res.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintln(w, "| "+strings.Join(seps, " | ")+" |")
	for _, row := range res.Rows {
		_, _ = fmt.Fprintln(w, "| "+strings.Join(row, " | ")+" |")
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
