package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/cli/output"
	"github.com/tosworks/sqf2tcl/pkg/sqf"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the translation rules",
		Long: `List the translation rules in their evaluation order.

Rules are tried top to bottom against each statement; the first match
wins. A statement matching no rule passes through as a TODO comment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

var rulesHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func listRules(cmd *cobra.Command, format string) error {
	r := getRenderer(cmd)
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}

	rules := sqf.Rules()

	if r.EffectiveMode() == output.ModeJSON {
		type ruleInfo struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Kind    string `json:"kind"`
			Summary string `json:"summary"`
		}
		infos := make([]ruleInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, ruleInfo{
				ID: rule.ID, Name: rule.Name, Kind: rule.Kind.String(), Summary: rule.Summary,
			})
		}
		return r.JSON(infos)
	}

	if r.ColorEnabled() {
		r.Println(rulesHeaderStyle.Render("Translation rules (evaluated in order, first match wins)"))
	} else {
		r.Println("Translation rules (evaluated in order, first match wins)")
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.AppendHeader(table.Row{"#", "ID", "Name", "Rewrite"})
	for i, rule := range rules {
		t.AppendRow(table.Row{i + 1, rule.ID, rule.Name, rule.Summary})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}
	return nil
}
