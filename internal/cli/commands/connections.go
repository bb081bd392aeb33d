package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewConnectionsCommand creates the connections command, which lists the
// configured connections and optionally pings one.
func NewConnectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "List configured connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			names := make([]string, 0, len(cfg.Connections))
			for name := range cfg.Connections {
				names = append(names, name)
			}
			sort.Strings(names)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Dialect", "Target"})
			for _, name := range names {
				conn := cfg.Connections[name]
				t.AppendRow(table.Row{name, conn.Dialect, conn.Redacted()})
			}
			t.Render()
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Check that the selected connection works",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cc.DB.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connection %q OK (%s)\n", cc.Cfg.Connection, cc.Dialect.Name)
			return nil
		},
	})

	return cmd
}
