// Package config provides configuration management for the sqf2tcl
// CLI. Values are merged from defaults, an optional sqf2tcl.yaml file,
// SQF2TCL_* environment variables, and command-line flags, in
// ascending priority.
package config

// Default configuration values.
const (
	DefaultStateFile = ".sqf2tcl/state.db"
	DefaultIndent    = 4
	DefaultServePort = 8765
	DefaultOutput    = "auto"
)

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string `koanf:"state_path"`
	RulesPath    string `koanf:"rules_path"`
	ArgDBPath    string `koanf:"argdb_path"`
	Indent       int    `koanf:"indent"`
	ReportAuto   bool   `koanf:"report_auto"`
	ServePort    int    `koanf:"serve_port"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}
