package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/cli/config"
	"github.com/tosworks/sqf2tcl/internal/convert"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Translate SQF interactively",
		Long: `Start an interactive session that translates SQF statements as you
type them. Multi-line block constructs are accumulated until braces
balance and the statement ends with a semicolon.`,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := getConfig(cmd)

	convOpts, err := buildConvertOptions(cfg)
	if err != nil {
		return err
	}
	// Line-at-a-time input is never a report transcript.
	convOpts.Report = convert.ReportOff

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqf> ",
		HistoryFile:     replHistoryPath(cfg),
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "sqf2tcl REPL")
	_, _ = fmt.Fprintln(out, "Type SQF statements; .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt("sqf> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(trimmed, ".") {
			if trimmed == ".quit" || trimmed == ".exit" {
				break
			}
			handleREPLDotCommand(cmd, trimmed)
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		// Keep reading until braces balance and a semicolon ends the
		// statement, so block constructs can span lines. Comment lines
		// never end in semicolons and convert immediately.
		pending := buf.String()
		incomplete := openBraces(pending) > 0 ||
			(!strings.HasSuffix(strings.TrimSpace(pending), ";") && !isCommentLine(trimmed))
		if incomplete {
			rl.SetPrompt(" ...> ")
			continue
		}
		rl.SetPrompt("sqf> ")

		result := convert.Convert(pending, convOpts)
		buf.Reset()
		_, _ = fmt.Fprintln(out, result.Output)
	}

	return nil
}

// replHistoryPath returns the history file location beside the state
// database, creating the directory so readline can persist history on
// a fresh checkout where nothing has opened the store yet.
func replHistoryPath(cfg *config.Config) string {
	dir := filepath.Dir(cfg.StatePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			slog.Warn("repl history will not persist", "error", err)
		}
	}
	return filepath.Join(dir, "repl_history")
}

func handleREPLDotCommand(cmd *cobra.Command, line string) {
	out := cmd.OutOrStdout()
	switch line {
	case ".help":
		_, _ = fmt.Fprintln(out, "Commands:")
		_, _ = fmt.Fprintln(out, "  .help   Show this help")
		_, _ = fmt.Fprintln(out, "  .rules  List translation rules")
		_, _ = fmt.Fprintln(out, "  .quit   Exit the REPL")
	case ".rules":
		_ = listRules(cmd, "text")
	default:
		_, _ = fmt.Fprintf(out, "Unknown command %s (try .help)\n", line)
	}
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".rules"),
		readline.PcItem(".quit"),
		readline.PcItem("hint"),
		readline.PcItem("sleep"),
		readline.PcItem("if"),
		readline.PcItem("for"),
		readline.PcItem("while"),
	)
}

// openBraces counts unclosed braces outside string literals.
func openBraces(s string) int {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString && depth > 0 {
				depth--
			}
		}
	}
	return depth
}

func isCommentLine(s string) bool {
	return strings.HasPrefix(s, "//") || strings.HasPrefix(s, ";")
}
