package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/cli/output"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		Long:  `List conversion runs recorded in the local history database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, format string) error {
	cfg := getConfig(cmd)
	r := getRenderer(cmd)
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	if len(runs) == 0 {
		r.Println("No conversions recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.AppendHeader(table.Row{"Started", "Input", "Output", "Statements", "TODO", "Status"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.StartedAt.Local().Format(time.DateTime),
			run.InputPath,
			run.OutputPath,
			run.Statements,
			run.Unknown,
			string(run.Status),
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}
	return nil
}
