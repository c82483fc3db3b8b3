// Package sqf scans SQF source text into top-level statements and
// classifies each statement against a fixed, ordered set of pattern
// rules. It is deliberately not a real parser: the recognizers cover
// the handful of syntactic shapes the converter understands, and
// everything else classifies as Unknown.
package sqf

// Kind identifies the syntactic shape of a classified statement.
type Kind int

// Kind constants, one per recognized construct.
const (
	KindUnknown Kind = iota
	KindComment
	KindAssignment
	KindIf
	KindFor
	KindWhile
	KindHint
	KindSleep
)

func (k Kind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindAssignment:
		return "assignment"
	case KindIf:
		return "if"
	case KindFor:
		return "for"
	case KindWhile:
		return "while"
	case KindHint:
		return "hint"
	case KindSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// Node is one classified top-level statement. Raw always holds the
// original statement text so unknown constructs can be passed through
// verbatim. The payload fields are populated per kind; fields that do
// not apply to a kind are left empty.
type Node struct {
	Kind Kind
	Raw  string
	Line int // 1-based source line of the statement's first character

	Text    string // Comment: body with the marker stripped
	Name    string // Assignment, For: variable name, leading underscore stripped
	Value   string // Assignment: right-hand side, verbatim
	Cond    string // If, While: condition expression
	Body    string // If, For, While: unparsed block body
	From    string // For: start bound
	To      string // For: end bound
	Payload string // Hint: argument text after the keyword
	Seconds string // Sleep: duration literal
}
