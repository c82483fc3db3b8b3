package sqf

import (
	"regexp"
	"strings"
)

// Rule pairs a recognizer with the node kind it produces. Rules are
// evaluated in the order returned by Rules; the first match wins, so
// the slice order is the whole dispatch policy.
type Rule struct {
	ID      string
	Kind    Kind
	Name    string
	Summary string

	match func(s string) (Node, bool)
}

// Recognizer patterns. Anchored where the original construct demands
// it; (?s) lets block bodies span lines.
var (
	reLineComment = regexp.MustCompile(`^//\s?(.*)$`)
	reSemiComment = regexp.MustCompile(`^;\s?(.*)$`)
	// [^=] after the equals sign keeps `==` comparisons out.
	reAssign        = regexp.MustCompile(`^_?([A-Za-z0-9_]+)\s*=\s*([^=].*?)\s*;?\s*$`)
	reIf            = regexp.MustCompile(`(?s)^if\s*\((.+)\)\s*then\s*\{(.*)\}\s*;?$`)
	reFor           = regexp.MustCompile(`(?s)^for\s+"?_?([A-Za-z0-9_]+)"?\s+from\s+(-?[0-9]+)\s+to\s+(-?[0-9]+)\s+do\s*\{(.*)\}\s*;?$`)
	reWhile         = regexp.MustCompile(`(?s)^while\s*\{(.+?)\}\s*do\s*\{(.*)\}\s*;?$`)
	reHint          = regexp.MustCompile(`(?s)^hint\s+(.+?)\s*;?\s*$`)
	reSleep         = regexp.MustCompile(`^sleep\s+([0-9.]+)\s*;?$`)
	reKeywordAssign = regexp.MustCompile(`([A-Za-z0-9_]+)\s*=\s*([^=].*?)\s*;?\s*$`)
)

// rules is the fixed priority order. Comments first so `// x = y` never
// reads as an assignment; block and builtin keywords before the loose
// keyword-assignment fallback so `while {_x = ...}` style bodies and
// conditions are not shadowed by it.
var rules = []Rule{
	{
		ID: "CM01", Kind: KindComment, Name: "line-comment",
		Summary: "// comment  ->  # comment",
		match: func(s string) (Node, bool) {
			m := reLineComment.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindComment, Text: strings.TrimSpace(m[1])}, true
		},
	},
	{
		ID: "CM02", Kind: KindComment, Name: "semi-comment",
		Summary: "; comment  ->  # comment",
		match: func(s string) (Node, bool) {
			m := reSemiComment.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindComment, Text: strings.TrimSpace(m[1])}, true
		},
	},
	{
		ID: "AS01", Kind: KindAssignment, Name: "assignment",
		Summary: `_var = value;  ->  set var value`,
		match: func(s string) (Node, bool) {
			m := reAssign.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindAssignment, Name: m[1], Value: m[2]}, true
		},
	},
	{
		ID: "IF01", Kind: KindIf, Name: "if-then",
		Summary: "if (cond) then { body }  ->  if {cond} { body }",
		match: func(s string) (Node, bool) {
			m := reIf.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindIf, Cond: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}, true
		},
	},
	{
		ID: "FR01", Kind: KindFor, Name: "for-from-to",
		Summary: `for "_i" from a to b do { body }  ->  for {set i a} {$i <= b} {incr i} { body }`,
		match: func(s string) (Node, bool) {
			m := reFor.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{
				Kind: KindFor,
				Name: m[1],
				From: m[2],
				To:   m[3],
				Body: strings.TrimSpace(m[4]),
			}, true
		},
	},
	{
		ID: "WH01", Kind: KindWhile, Name: "while-do",
		Summary: "while {cond} do { body }  ->  while {cond} { body }",
		match: func(s string) (Node, bool) {
			m := reWhile.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindWhile, Cond: strings.TrimSpace(m[1]), Body: strings.TrimSpace(m[2])}, true
		},
	},
	{
		ID: "HN01", Kind: KindHint, Name: "hint",
		Summary: `hint "text";  ->  puts "text"`,
		match: func(s string) (Node, bool) {
			m := reHint.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindHint, Payload: m[1]}, true
		},
	},
	{
		ID: "SL01", Kind: KindSleep, Name: "sleep",
		Summary: "sleep n;  ->  after n*1000",
		match: func(s string) (Node, bool) {
			m := reSleep.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindSleep, Seconds: m[1]}, true
		},
	},
	{
		ID: "AS02", Kind: KindAssignment, Name: "keyword-assignment",
		Summary: `VERIFY xx = val ;  ->  set xx val (loose fallback)`,
		match: func(s string) (Node, bool) {
			if !strings.Contains(s, "=") {
				return Node{}, false
			}
			m := reKeywordAssign.FindStringSubmatch(s)
			if m == nil {
				return Node{}, false
			}
			return Node{Kind: KindAssignment, Name: m[1], Value: m[2]}, true
		},
	},
}

// Rules returns the rule set in evaluation order. The returned slice is
// shared; callers must not mutate it.
func Rules() []Rule {
	return rules
}

// Classify runs the statement through the rule list and returns the
// first match, or an Unknown node when nothing matches.
func Classify(st Statement) Node {
	s := strings.TrimSpace(st.Text)
	for _, r := range rules {
		if n, ok := r.match(s); ok {
			n.Raw = s
			n.Line = st.Line
			return n
		}
	}
	return Node{Kind: KindUnknown, Raw: s, Line: st.Line}
}
