// Package output selects how command results are rendered: styled text
// for interactive terminals, markdown for pipes, or JSON for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode is an output rendering mode.
type Mode string

// Rendering modes. ModeAuto resolves to text on a terminal and
// markdown otherwise.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out  io.Writer
	err  io.Writer
	mode Mode
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, err: errOut, mode: mode}
}

// Out returns the output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Err returns the error writer.
func (r *Renderer) Err() io.Writer { return r.err }

// EffectiveMode resolves ModeAuto based on whether stdout is a
// terminal.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// ColorEnabled reports whether styled output should use color.
func (r *Renderer) ColorEnabled() bool {
	if r.EffectiveMode() != ModeText {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}
