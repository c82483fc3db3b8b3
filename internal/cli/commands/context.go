// Package commands implements the sqf2tcl subcommands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tosworks/sqf2tcl/internal/argdb"
	"github.com/tosworks/sqf2tcl/internal/cli/config"
	"github.com/tosworks/sqf2tcl/internal/cli/output"
	"github.com/tosworks/sqf2tcl/internal/convert"
	"github.com/tosworks/sqf2tcl/internal/report"
	"github.com/tosworks/sqf2tcl/internal/state"
)

// ConfigKey is the context key under which the root command stores the
// loaded configuration.
type ConfigKey struct{}

// RendererKey is the context key under which the root command stores
// the output renderer.
type RendererKey struct{}

// getConfig retrieves the config from the command context, falling
// back to defaults when the command runs outside the root (tests).
func getConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		StatePath:    config.DefaultStateFile,
		Indent:       config.DefaultIndent,
		ReportAuto:   true,
		ServePort:    config.DefaultServePort,
		OutputFormat: config.DefaultOutput,
	}
}

// getRenderer retrieves the renderer from the command context.
func getRenderer(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(RendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
}

// buildConvertOptions assembles conversion options from config,
// loading the report rules file and argument database when configured.
func buildConvertOptions(cfg *config.Config) (convert.Options, error) {
	opts := convert.Options{Indent: cfg.Indent}
	if !cfg.ReportAuto {
		opts.Report = convert.ReportOff
	}

	if cfg.RulesPath != "" {
		rules, err := report.LoadRules(cfg.RulesPath)
		if err != nil {
			return opts, err
		}
		opts.ReportRules = rules
	}

	if cfg.ArgDBPath != "" {
		db, err := argdb.Load(cfg.ArgDBPath)
		if err != nil {
			return opts, err
		}
		opts.ArgDB = db
	}

	return opts, nil
}

// openStore opens (and migrates) the conversion history database.
func openStore(cfg *config.Config) (state.Store, error) {
	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
