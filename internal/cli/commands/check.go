package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/cli/output"
	"github.com/tosworks/sqf2tcl/pkg/sqf"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	UnknownOnly bool
	Format      string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Classify an SQF file without converting it",
		Long: `Classify each statement of an SQF file and report the matched rule.

Statements that no rule matches would come out of conversion as TODO
comments; use --unknown to list only those.`,
		Example: `  # Show how every statement classifies
  sqf2tcl check mission.sqf

  # List only the statements that need manual conversion
  sqf2tcl check --unknown mission.sqf

  # Machine-readable output
  sqf2tcl check --format json mission.sqf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.UnknownOnly, "unknown", false, "Show only unrecognized statements")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

type checkEntry struct {
	Line      int    `json:"line"`
	Kind      string `json:"kind"`
	Statement string `json:"statement"`
}

func runCheck(cmd *cobra.Command, inputPath string, opts *CheckOptions) error {
	r := getRenderer(cmd)
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", inputPath, err)
	}

	var entries []checkEntry
	unknown := 0
	for _, n := range sqf.Parse(string(source)) {
		if n.Kind == sqf.KindUnknown {
			unknown++
		}
		if opts.UnknownOnly && n.Kind != sqf.KindUnknown {
			continue
		}
		entries = append(entries, checkEntry{
			Line:      n.Line,
			Kind:      n.Kind.String(),
			Statement: firstLine(n.Raw),
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"file":       inputPath,
			"unknown":    unknown,
			"statements": entries,
		})
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.AppendHeader(table.Row{"Line", "Kind", "Statement"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Line, e.Kind, e.Statement})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}

	if unknown > 0 {
		r.Printf("\n%d statement(s) would need manual conversion\n", unknown)
	}
	return nil
}

// firstLine truncates multi-line statements for table display.
func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
