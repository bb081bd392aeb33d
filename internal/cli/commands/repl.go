package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/querybench/querybench/pkg/completion"
	"github.com/querybench/querybench/pkg/splitter"
)

const (
	replPrompt     = "querybench> "
	replContPrompt = "       ...> "
)

// NewREPLCommand creates the repl command, the interactive shell.
func NewREPLCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Start the interactive SQL shell",
		Long: `Start an interactive shell on the configured connection.

Statements may span multiple lines and end with the current delimiter.
Tab completion is context sensitive: tables after FROM, columns in the
select list and WHERE clauses, drop options after DROP, and so on.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("repl needs an interactive terminal; use 'querybench run' for scripts")
			}

			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if format == "" {
				format = cc.Cfg.OutputFormat
			}
			return runREPL(cmd, cc, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (table|csv|json|markdown)")
	return cmd
}

func runREPL(cmd *cobra.Command, cc *CommandContext, format string) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(cc),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "querybench (%s)\n", cc.Dialect.Name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if buffer.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := handleDotCommand(ctx, cmd, cc, trimmed, &format); quit {
					break
				}
				continue
			}
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		// Keep reading until every statement in the buffer is closed by
		// its delimiter; the splitter knows the dialect's rules, so a
		// semicolon inside a COPY payload does not end the input.
		script := buffer.String()
		if !scriptComplete(cc, script) {
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)
		buffer.Reset()

		results, runErr := cc.Runner.RunScript(ctx, script)
		for _, res := range results {
			if err := renderResult(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
		}
		if runErr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", runErr)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// scriptComplete reports whether every statement in the buffer has been
// terminated.
func scriptComplete(cc *CommandContext, script string) bool {
	sp := splitter.Splitter{LexOptions: cc.Dialect.LexOptions}
	spans := sp.Split(script, cc.Dialect.NewDelimiterPolicy())
	if len(spans) == 0 {
		return false
	}
	return spans[len(spans)-1].Terminated()
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, cc *CommandContext, line string, format *string) (quit bool) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".tables":
		if err := listTables(ctx, cmd.OutOrStdout(), cc); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .schema <table>")
			return false
		}
		if err := showColumns(ctx, cmd.OutOrStdout(), cc, parts[1]); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".refresh":
		cc.Meta.Invalidate()
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Metadata cache cleared")

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current format: %s\n", *format)
			return false
		}
		*format = parts[1]

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List tables and views
  .schema <name>  Show the columns of a table or view
  .format [fmt]   Show or change the output format
  .refresh        Clear the metadata cache
  .clear          Clear the screen
  .quit / .exit   Exit the shell

Tips:
  - Statements end with the current delimiter (usually ;)
  - Use DELIMITER // to change it, e.g. around procedure bodies
  - Tab completion adapts to the cursor position
`
	_, _ = fmt.Fprintln(w, help)
}

func listTables(ctx context.Context, w io.Writer, cc *CommandContext) error {
	refs, err := cc.Meta.ListTables(ctx, completion.Namespace{}, nil)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		_, _ = fmt.Fprintln(w, ref.String())
	}
	if len(refs) == 0 {
		_, _ = fmt.Fprintln(w, "(no tables)")
	}
	return nil
}

func showColumns(ctx context.Context, w io.Writer, cc *CommandContext, name string) error {
	table := completion.TableRef{Name: name}
	if schema, rest, found := strings.Cut(name, "."); found {
		table = completion.TableRef{
			Namespace: completion.SchemaNamespace(schema),
			Name:      rest,
		}
	}
	cols, err := cc.Meta.ListColumns(ctx, table)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("no such table: %s", name)
	}
	for _, col := range cols {
		_, _ = fmt.Fprintln(w, col)
	}
	return nil
}
