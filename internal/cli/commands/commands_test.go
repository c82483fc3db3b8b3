package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tosworks/sqf2tcl/internal/cli/config"
)

// testConfig returns a config whose state database lives in a temp
// directory so runs never touch the working tree.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StatePath:    filepath.Join(t.TempDir(), "state.db"),
		Indent:       config.DefaultIndent,
		ReportAuto:   true,
		ServePort:    config.DefaultServePort,
		OutputFormat: config.DefaultOutput,
	}
}

// execute runs a command with a test config wired into its context and
// returns captured stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	ctx := context.WithValue(context.Background(), ConfigKey{}, testConfig(t))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "sqf2tcl v1.2.3")
	assert.Contains(t, stdout, "SQF to TCL source converter")
}

func TestConvertCommand_WritesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mission.sqf")
	output := filepath.Join(dir, "mission.tcl")
	require.NoError(t, os.WriteFile(input, []byte("_value = 10;\nhint \"done\";\n"), 0644))

	_, stderr, err := execute(t, NewConvertCommand(), input, output)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote:")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "set value 10\nputs \"done\"\n", string(data))
}

func TestConvertCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mission.sqf")
	require.NoError(t, os.WriteFile(input, []byte("sleep 2;\n"), 0644))

	stdout, _, err := execute(t, NewConvertCommand(), input, "-")
	require.NoError(t, err)
	assert.Equal(t, "after 2000\n", stdout)
}

func TestConvertCommand_Summary(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mission.sqf")
	require.NoError(t, os.WriteFile(input, []byte("_a = 1;\nmystery thing;\n"), 0644))

	_, stderr, err := execute(t, NewConvertCommand(), "--summary", input, "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 statements")
	assert.Contains(t, stderr, "1 statement(s) need manual conversion")
}

func TestConvertCommand_MissingInput(t *testing.T) {
	_, _, err := execute(t, NewConvertCommand(), filepath.Join(t.TempDir(), "nope.sqf"), "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")
}

func TestConvertCommand_ArgCount(t *testing.T) {
	_, _, err := execute(t, NewConvertCommand(), "only-one.sqf")
	assert.Error(t, err)
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mission.sqf")
	require.NoError(t, os.WriteFile(input, []byte("_a = 1;\nmystery thing;\n"), 0644))

	stdout, _, err := execute(t, NewCheckCommand(), "--format", "json", input)
	require.NoError(t, err)

	var payload struct {
		File       string `json:"file"`
		Unknown    int    `json:"unknown"`
		Statements []struct {
			Line int    `json:"line"`
			Kind string `json:"kind"`
		} `json:"statements"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))

	assert.Equal(t, input, payload.File)
	assert.Equal(t, 1, payload.Unknown)
	require.Len(t, payload.Statements, 2)
	assert.Equal(t, "assignment", payload.Statements[0].Kind)
	assert.Equal(t, "unknown", payload.Statements[1].Kind)
}

func TestCheckCommand_UnknownOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mission.sqf")
	require.NoError(t, os.WriteFile(input, []byte("_a = 1;\nmystery thing;\n"), 0644))

	stdout, _, err := execute(t, NewCheckCommand(), "--unknown", "--format", "json", input)
	require.NoError(t, err)

	var payload struct {
		Statements []struct {
			Kind string `json:"kind"`
		} `json:"statements"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload.Statements, 1)
	assert.Equal(t, "unknown", payload.Statements[0].Kind)
}

func TestRulesCommand(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	assert.Contains(t, stdout, "AS01")
	assert.Contains(t, stdout, "IF01")
	assert.Contains(t, stdout, "SL01")
}

func TestREPLHistoryPath_CreatesDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.StatePath = filepath.Join(t.TempDir(), "nested", "state.db")

	path := replHistoryPath(cfg)

	assert.Equal(t, filepath.Join(filepath.Dir(cfg.StatePath), "repl_history"), path)
	info, err := os.Stat(filepath.Dir(cfg.StatePath))
	require.NoError(t, err, "history directory must exist before readline opens the file")
	assert.True(t, info.IsDir())
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "short", firstLine("short"))
	assert.Equal(t, "first ...", firstLine("first\nsecond"))
}

func TestBuildConvertOptions_MissingRules(t *testing.T) {
	cfg := testConfig(t)
	cfg.RulesPath = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := buildConvertOptions(cfg)
	assert.Error(t, err)
}

func TestBuildConvertOptions_MissingArgDB(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArgDBPath = filepath.Join(t.TempDir(), "nope.txt")

	_, err := buildConvertOptions(cfg)
	assert.Error(t, err)
}
