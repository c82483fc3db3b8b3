package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/cli/config"
	"github.com/tosworks/sqf2tcl/internal/convert"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Report  bool
	Watch   bool
	Summary bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an SQF file to TCL",
		Long: `Convert an SQF source file into TCL.

Recognized constructs are rewritten; anything else is preserved as a
TODO comment. Use - as the output path to write to stdout. Sources
containing TOS_COM markers are rendered as formatted reports unless
report auto-detection is disabled in the config.`,
		Example: `  # Convert a file
  sqf2tcl convert mission.sqf mission.tcl

  # Convert to stdout
  sqf2tcl convert mission.sqf -

  # Force report-style conversion with custom rules
  sqf2tcl convert --report --rules rules.yaml transcript.sqf report.txt

  # Re-convert whenever the input changes
  sqf2tcl convert --watch mission.sqf mission.tcl`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Report, "report", false, "Force report-style conversion")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch the input file and re-convert on change")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print a conversion summary")

	return cmd
}

func runConvert(cmd *cobra.Command, inputPath, outputPath string, opts *ConvertOptions) error {
	cfg := getConfig(cmd)

	convOpts, err := buildConvertOptions(cfg)
	if err != nil {
		return err
	}
	if opts.Report {
		convOpts.Report = convert.ReportOn
	}

	if err := convertOnce(cmd, cfg, inputPath, outputPath, convOpts, opts); err != nil {
		return err
	}

	if opts.Watch {
		return watchConvert(cmd, cfg, inputPath, outputPath, convOpts, opts)
	}
	return nil
}

// convertOnce runs a single conversion pass and records it in the
// history store. A store failure is logged but never fails the
// conversion.
func convertOnce(cmd *cobra.Command, cfg *config.Config, inputPath, outputPath string, convOpts convert.Options, opts *ConvertOptions) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", inputPath, err)
	}

	result := convert.Convert(string(source), convOpts)

	if outputPath == "-" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	} else {
		if err := os.WriteFile(outputPath, []byte(result.Output+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote: %s\n", outputPath)
	}

	recordRun(cfg, inputPath, outputPath, result)

	if opts.Summary || cfg.Verbose {
		printSummary(cmd, result)
	}
	return nil
}

// recordRun persists the conversion to the history store, best-effort.
func recordRun(cfg *config.Config, inputPath, outputPath string, result *convert.Result) {
	store, err := openStore(cfg)
	if err != nil {
		slog.Warn("conversion history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run, err := store.CreateRun(inputPath, outputPath)
	if err != nil {
		slog.Warn("failed to record conversion run", "error", err)
		return
	}
	if err := store.CompleteRun(run.ID, result.Stats.Statements, result.Stats.Unknown, result.Stats.Report); err != nil {
		slog.Warn("failed to complete conversion run", "error", err)
	}
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func printSummary(cmd *cobra.Command, result *convert.Result) {
	out := cmd.ErrOrStderr()
	stats := result.Stats

	if stats.Report {
		_, _ = fmt.Fprintf(out, "%s report mode, %s\n",
			summaryTitleStyle.Render("Converted:"), stats.Duration.Round(time.Microsecond))
		return
	}

	_, _ = fmt.Fprintf(out, "%s %d statements in %s\n",
		summaryTitleStyle.Render("Converted:"), stats.Statements, stats.Duration.Round(time.Microsecond))
	if stats.Unknown > 0 {
		_, _ = fmt.Fprintln(out, summaryWarnStyle.Render(
			fmt.Sprintf("%d statement(s) need manual conversion (marked TODO)", stats.Unknown)))
	}
}

// watchConvert re-runs the conversion whenever the input file changes.
// Blocks until interrupted.
func watchConvert(cmd *cobra.Command, cfg *config.Config, inputPath, outputPath string, convOpts convert.Options, opts *ConvertOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors replace files on save.
	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (ctrl-c to stop)\n", inputPath)

	absInput, _ := filepath.Abs(inputPath)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != absInput {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				if err := convertOnce(cmd, cfg, inputPath, outputPath, convOpts, opts); err != nil {
					slog.Error("conversion failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			slog.Error("watcher error", "error", err)
		}
	}
}
