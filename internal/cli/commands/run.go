package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command, which executes SQL script files.
func NewRunCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run <script.sql> [script.sql...]",
		Short: "Run SQL script files",
		Long: `Execute one or more SQL script files statement by statement.

Scripts are split with the connection dialect's delimiter rules, so
DELIMITER changes, COPY ... FROM stdin payloads and BEGIN ATOMIC bodies
are handled correctly. "@file" lines include other scripts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if format == "" {
				format = cc.Cfg.OutputFormat
			}

			var failed int
			for _, path := range args {
				cc.Logger.Info("running script", "path", path)
				results, err := cc.Runner.RunFile(cmd.Context(), path)
				for _, res := range results {
					if res.Err != nil {
						failed++
					}
					if err := renderResult(cmd.OutOrStdout(), res, format); err != nil {
						return err
					}
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d statement(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format for this run (table|csv|json|markdown)")
	return cmd
}
