// Package tcl renders classified SQF statements as TCL source. Each
// node kind has one rewrite template; unknown statements come out as
// TODO comments so no input is ever dropped.
package tcl

import (
	"regexp"
	"strings"
)

var (
	reUnderscoreVar = regexp.MustCompile(`_([A-Za-z0-9_]+)`)
	reBareWord      = regexp.MustCompile(`\b([A-Za-z0-9_]+)\b`)
	reAllDigits     = regexp.MustCompile(`^[0-9]+$`)
)

// ConvertExpr rewrites an SQF expression for use inside a TCL brace
// expression: `_name` loses its underscore, bare identifiers become
// `$name` variable references, numbers stay as they are. This is a
// heuristic textual substitution, not an expression parser.
func ConvertExpr(expr string) string {
	expr = reUnderscoreVar.ReplaceAllString(expr, "$1")
	expr = reBareWord.ReplaceAllStringFunc(expr, func(w string) string {
		if reAllDigits.MatchString(w) {
			return w
		}
		return "$" + w
	})
	// A reference that was already $-prefixed would now be doubled.
	return strings.ReplaceAll(expr, "$$", "$")
}
