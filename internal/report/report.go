// Package report converts company-style SQF command transcripts into
// the formatted TOS_COM report layout: a numbered header, a "Send
// commands" section, a "Verify Telemetry" section, and an END trailer.
// An optional rules file overrides the built-in patterns and formats.
package report

import (
	"regexp"
	"strings"

	"github.com/tosworks/sqf2tcl/internal/argdb"
)

// Default recognizers for the built-in TOS_COM layout.
var (
	reSendCommand   = regexp.MustCompile(`(?i)^C\s+([A-Za-z0-9_]+)\s*(?:;\s*(.+))?$`)
	reVerify        = regexp.MustCompile(`([A-Za-z0-9_]+)\s*=\s*([A-Za-z0-9_]+)\s*(?:;\s*(.+))?$`)
	defaultHeader   = "0.1 TOS_COM"
	defaultTitlePfx = "VEHICLE"
)

// Options configures report generation.
type Options struct {
	Rules *Rules    // nil = built-in defaults
	ArgDB *argdb.DB // nil = no argument expansion
}

// Detect reports whether the source looks like a TOS_COM transcript.
func Detect(source string) bool {
	return strings.Contains(source, "TOS_COM")
}

// Convert renders the transcript as report text.
func Convert(source string, opts Options) string {
	var (
		sendCmds  []string
		verifies  []string
		hasHeader bool
		seenEnd   bool
	)
	rules := opts.Rules

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// Company transcripts use leading semicolons as comments.
		clean := strings.TrimSpace(strings.TrimLeft(line, ";"))

		if matchHeader(rules, line, clean) {
			hasHeader = true
		}
		if matchTitle(rules, clean) {
			continue
		}

		if entry, ok := matchSendCommand(rules, line, opts.ArgDB); ok {
			sendCmds = append(sendCmds, entry)
			continue
		}

		upper := strings.ToUpper(clean)
		if strings.Contains(upper, "VERIFY") && strings.Contains(clean, "=") {
			if entry, ok := matchVerify(rules, clean); ok {
				verifies = append(verifies, entry)
				continue
			}
		}

		if upper == "END" {
			seenEnd = true
		}
	}

	var out []string
	if hasHeader {
		out = append(out, headerText(rules))
	}
	if len(sendCmds) > 0 {
		out = append(out, "    Send commands")
		out = append(out, sendCmds...)
	}
	if len(verifies) > 0 {
		out = append(out, "    Verify Telemetry")
		out = append(out, verifies...)
		out = append(out, "        ")
	}
	if seenEnd {
		out = append(out, "        END")
	}
	return strings.Join(out, "\n")
}

func matchHeader(rules *Rules, line, clean string) bool {
	if rules != nil && len(rules.Header) > 0 {
		for _, h := range rules.Header {
			if h.Match != "" && strings.Contains(line, h.Match) {
				return true
			}
		}
		return false
	}
	return strings.HasPrefix(strings.ToUpper(clean), "TOS_COM")
}

func headerText(rules *Rules) string {
	if rules != nil && len(rules.Header) > 0 && rules.Header[0].Text != "" {
		return rules.Header[0].Text
	}
	return defaultHeader
}

func matchTitle(rules *Rules, clean string) bool {
	if rules != nil && len(rules.Titles) > 0 {
		for _, pat := range rules.Titles {
			if re, err := regexp.Compile(`(?i)^(?:` + pat + `)`); err == nil && re.MatchString(clean) {
				return true
			}
		}
		return false
	}
	return strings.HasPrefix(strings.ToUpper(clean), defaultTitlePfx)
}

// matchSendCommand tries the custom send pattern first; a miss falls
// through to the built-in recognizer so a partial rules file never
// drops lines the defaults would have captured.
func matchSendCommand(rules *Rules, line string, db *argdb.DB) (string, bool) {
	if rules != nil && rules.SendCommand != nil {
		if entry, ok := rules.SendCommand.expand(line); ok {
			return entry, true
		}
	}
	m := reSendCommand.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name, comment := m[1], strings.TrimSpace(m[2])
	if db != nil {
		if args := db.Args(name); args != nil {
			name = name + " " + strings.Join(args, " ")
		}
	}
	return "        " + name + "     " + comment, true
}

func matchVerify(rules *Rules, clean string) (string, bool) {
	if rules != nil && rules.Verify != nil {
		if entry, ok := rules.Verify.expand(clean); ok {
			return entry, true
		}
	}
	m := reVerify.FindStringSubmatch(clean)
	if m == nil {
		return "", false
	}
	variable, value, label := m[1], m[2], strings.TrimSpace(m[3])
	return "            " + variable + ": state :: Cnt " + label + " := " + value + " ", true
}
