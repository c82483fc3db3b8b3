package report

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules customizes report generation. Every field is optional; missing
// fields fall back to the built-in TOS_COM defaults. The send and
// verify patterns augment rather than replace the defaults: a line the
// custom pattern does not match is still tried against the built-in
// recognizer.
type Rules struct {
	Header      []HeaderRule `yaml:"header"`
	Titles      []string     `yaml:"titles"`
	SendCommand *PatternRule `yaml:"send_command"`
	Verify      *PatternRule `yaml:"verify"`
}

// HeaderRule detects the report header and supplies its text.
type HeaderRule struct {
	Match string `yaml:"match"`
	Text  string `yaml:"text"`
}

// PatternRule pairs a recognizer regexp (with named capture groups)
// with an output format whose {name} placeholders are filled from the
// groups.
type PatternRule struct {
	Pattern string `yaml:"pattern"`
	Format  string `yaml:"format"`
}

// LoadRules reads a rules file in YAML form.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return &r, nil
}

// expand applies a PatternRule to a line. On match, {group} tokens in
// the format string are replaced with the named submatches.
func (p *PatternRule) expand(line string) (string, bool) {
	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	out := p.Format
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(m) {
			continue
		}
		out = strings.ReplaceAll(out, "{"+name+"}", m[i])
	}
	return out, true
}
