// Package argdb loads the command argument database used by report
// generation. The file format is plain text, one entry per line:
//
//	command priority_index argument_name
//
// Blank lines and lines starting with # are ignored. Argument names
// are ordered by priority index when looked up.
package argdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

type entry struct {
	index int
	name  string
}

// DB holds argument lists keyed by lower-cased command name.
type DB struct {
	commands map[string][]entry
}

// Load reads an argument database file.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open argument database: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads argument database entries from r. Malformed lines are
// reported with their line number rather than skipped silently.
func Parse(r io.Reader) (*DB, error) {
	db := &DB{commands: make(map[string][]entry)}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("argument database line %d: expected 'command index name', got %q", lineno, line)
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("argument database line %d: bad priority index %q: %w", lineno, fields[1], err)
		}

		cmd := strings.ToLower(fields[0])
		db.commands[cmd] = append(db.commands[cmd], entry{index: idx, name: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read argument database: %w", err)
	}

	for _, entries := range db.commands {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].index < entries[j].index })
	}
	return db, nil
}

// Args returns the ordered argument names for a command, or nil when
// the command is not in the database.
func (db *DB) Args(command string) []string {
	entries := db.commands[strings.ToLower(command)]
	if len(entries) == 0 {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Commands returns all known command names, sorted.
func (db *DB) Commands() []string {
	names := make([]string, 0, len(db.commands))
	for name := range db.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of commands in the database.
func (db *DB) Len() int {
	return len(db.commands)
}
