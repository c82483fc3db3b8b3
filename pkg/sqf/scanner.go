package sqf

import "strings"

// Statement is a raw top-level statement together with the source line
// it starts on.
type Statement struct {
	Text string
	Line int
}

// Split breaks SQF source into top-level statements. Statements end at
// a semicolon outside braces and string literals, so block constructs
// like `if (...) then { ...; ... };` stay whole and their bodies can be
// matched by the block recognizers.
//
// A statement that spans multiple lines but contains no braces (a run
// of comment lines, typically) is re-split per line, since comment
// lines do not end with semicolons.
func Split(source string) []Statement {
	var stmts []Statement

	var buf strings.Builder
	line := 1
	startLine := 0 // line of first non-blank char in buf, 0 = not seen yet
	depth := 0
	inString := false
	inComment := false // top-level line comment, runs to end of line

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			stmts = append(stmts, Statement{Text: text, Line: startLine})
		}
		buf.Reset()
		startLine = 0
	}

	for i := 0; i < len(source); i++ {
		ch := source[i]
		blank := startLine == 0

		buf.WriteByte(ch)
		if blank && ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			startLine = line
		}

		if inComment {
			if ch == '\n' {
				line++
				inComment = false
				flush()
			}
			continue
		}

		switch {
		case ch == '\n':
			line++
		case ch == '"':
			inString = !inString
		case inString:
			// semicolons and braces inside string literals are text
		case ch == '{':
			depth++
		case ch == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && blank && (ch == ';' || ch == '/' && i+1 < len(source) && source[i+1] == '/'):
			// A semicolon or // at the start of a statement opens a
			// line comment; its body may contain semicolons.
			inComment = true
		case ch == ';' && depth == 0:
			flush()
		}
	}
	flush()

	return splitBareLines(stmts)
}

// splitBareLines breaks multi-line statements that carry no braces into
// one statement per line. Brace-bearing statements are kept whole so
// the block recognizers can see their bodies.
func splitBareLines(stmts []Statement) []Statement {
	out := make([]Statement, 0, len(stmts))
	for _, st := range stmts {
		if !strings.Contains(st.Text, "\n") || strings.ContainsAny(st.Text, "{}") {
			out = append(out, st)
			continue
		}

		line := st.Line
		for _, l := range strings.Split(st.Text, "\n") {
			if t := strings.TrimSpace(l); t != "" {
				out = append(out, Statement{Text: t, Line: line})
			}
			line++
		}
	}
	return out
}

// Parse splits source into statements and classifies each one.
func Parse(source string) []Node {
	stmts := Split(source)
	nodes := make([]Node, 0, len(stmts))
	for _, st := range stmts {
		nodes = append(nodes, Classify(st))
	}
	return nodes
}
