package tcl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tosworks/sqf2tcl/pkg/sqf"
)

const defaultIndent = "    "

// Emitter renders classified nodes as TCL lines. The zero value is
// usable and indents block bodies with four spaces.
type Emitter struct {
	indent string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithIndent sets the indent width for block bodies.
func WithIndent(width int) Option {
	return func(e *Emitter) {
		if width > 0 {
			e.indent = strings.Repeat(" ", width)
		}
	}
}

// NewEmitter creates an Emitter with the given options.
func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{indent: defaultIndent}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders the node list as TCL source. Output order follows node
// order; every node contributes at least one line.
func (e *Emitter) Emit(nodes []sqf.Node) string {
	var lines []string
	for _, n := range nodes {
		lines = append(lines, e.emitNode(n)...)
	}
	return strings.Join(lines, "\n")
}

// EmitSource is shorthand for scanning, classifying, and emitting in
// one call. Used for block bodies and by the REPL.
func (e *Emitter) EmitSource(source string) string {
	return e.Emit(sqf.Parse(source))
}

func (e *Emitter) emitNode(n sqf.Node) []string {
	switch n.Kind {
	case sqf.KindComment:
		return []string{"# " + n.Text}
	case sqf.KindAssignment:
		return []string{"set " + n.Name + " " + n.Value}
	case sqf.KindIf:
		return e.emitBlock("if {"+ConvertExpr(n.Cond)+"} {", n.Body)
	case sqf.KindFor:
		header := "for {set " + n.Name + " " + n.From + "} {$" + n.Name + " <= " + n.To + "} {incr " + n.Name + "} {"
		return e.emitBlock(header, n.Body)
	case sqf.KindWhile:
		return e.emitBlock("while {"+ConvertExpr(n.Cond)+"} {", n.Body)
	case sqf.KindHint:
		return []string{e.emitHint(n.Payload)}
	case sqf.KindSleep:
		return []string{e.emitSleep(n.Seconds)}
	default:
		return emitUnknown(n.Raw)
	}
}

// emitBlock renders a block header, the recursively converted body
// indented one level, and the closing brace.
func (e *Emitter) emitBlock(header, body string) []string {
	lines := []string{header}
	for _, l := range strings.Split(e.EmitSource(body), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, e.indent+l)
	}
	return append(lines, "}")
}

// hint format ["Index: %1", _i]
var reHintFormat = regexp.MustCompile(`(?s)^format\s*\[(.+)\]\s*$`)

// emitHint maps hint to puts. The `format [...]` form substitutes the
// first %1 placeholder with the referenced variable; anything fancier
// passes through as a plain puts argument.
func (e *Emitter) emitHint(payload string) string {
	m := reHintFormat.FindStringSubmatch(payload)
	if m == nil {
		return "puts " + payload
	}

	inner := strings.TrimSpace(m[1])
	parts := strings.SplitN(inner, ",", 2)
	format := strings.Trim(strings.TrimSpace(parts[0]), `"`)
	if len(parts) == 1 {
		return `puts "` + format + `"`
	}

	varname := strings.TrimSpace(reUnderscoreVar.ReplaceAllString(parts[1], "$1"))
	return `puts "` + strings.ReplaceAll(format, "%1", "$"+varname) + `"`
}

// emitSleep maps sleep seconds to after milliseconds.
func (e *Emitter) emitSleep(seconds string) string {
	secs, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return "# TODO: Could not automatically translate: sleep " + seconds
	}
	return "after " + strconv.Itoa(int(secs*1000))
}

// emitUnknown preserves an unmatched statement as comment lines so the
// output never loses input text.
func emitUnknown(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if i == 0 {
			out = append(out, "# TODO: Could not automatically translate: "+l)
			continue
		}
		out = append(out, "# "+l)
	}
	return out
}
