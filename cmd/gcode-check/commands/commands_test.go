package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/layerline/gcodecheck/pkg/machine"
)

const testdataDir = "../../../testdata/gcode"

func testFile(name string) string {
	return filepath.Join(testdataDir, name)
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestValidateValidFile(t *testing.T) {
	code, stdout, _ := run(t, "validate", testFile("small_example.gcode"))

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "small_example.gcode: OK (46 lines,")
}

func TestValidateErrorFile(t *testing.T) {
	code, stdout, stderr := run(t, "validate", testFile("small_example_error.gcode"))

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, stdout, "FAILED (1 errors: 1 invalid, 0 unsupported)")
	assert.Contains(t, stdout, `ERROR [line 22] INVALID: invalid command "GA1" (did you mean "G1"?)`)
	assert.Empty(t, stderr)
}

func TestValidateMixedFile(t *testing.T) {
	code, stdout, _ := run(t, "validate", testFile("mixed_example.gcode"))

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, stdout, "FAILED (3 errors: 2 invalid, 1 unsupported)")
	assert.Contains(t, stdout, `ERROR UNSUPPORTED: command "M117" is not supported yet`)
	assert.Contains(t, stdout, `ERROR [line 7] INVALID: invalid command "XYZ"`)
}

func TestValidateNoSuggest(t *testing.T) {
	_, stdout, _ := run(t, "validate", "--suggest=false", testFile("small_example_error.gcode"))
	assert.NotContains(t, stdout, "did you mean")
}

func TestValidateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.gcode")
	code, stdout, _ := run(t, "validate", path)

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, stdout, "missing.gcode: FAILED (1 errors)\n")
	assert.Contains(t, stdout, "ERROR IO: input/output error")
}

func TestValidateNoFiles(t *testing.T) {
	code, _, stderr := run(t, "validate")

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, stderr, "no files specified")
}

func TestValidateBadFormat(t *testing.T) {
	code, _, stderr := run(t, "validate", "--format", "xml", testFile("small_example.gcode"))

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, stderr, `invalid format "xml"`)
}

func TestValidateJSONOutput(t *testing.T) {
	mixed := testFile("mixed_example.gcode")
	small := testFile("small_example.gcode")
	code, stdout, _ := run(t, "validate", "-f", "json", mixed, small)
	assert.Equal(t, exitValidation, code)

	var results map[string]ValidationOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)

	assert.True(t, results[small].Valid)
	assert.NotEmpty(t, results[small].RunID)

	got := results[mixed]
	assert.False(t, got.Valid)
	assert.Equal(t, 7, got.Lines)
	assert.Equal(t, 3, got.Commands)
	assert.Equal(t, 2, got.Invalid)
	assert.Equal(t, 1, got.Unsupported)
	require.Len(t, got.Errors, 3)
	assert.Equal(t, IssueOutput{
		Code:    issueUnsupported,
		Command: "M117",
		Message: `command "M117" is not supported yet`,
	}, got.Errors[0])
	assert.Equal(t, issueInvalid, got.Errors[1].Code)
	assert.Equal(t, 4, got.Errors[1].Line)
	assert.Equal(t, "G1", got.Errors[1].Suggestion)
}

func TestValidateYAMLOutput(t *testing.T) {
	path := testFile("small_example_error.gcode")
	code, stdout, _ := run(t, "validate", "--format", "yaml", path)
	assert.Equal(t, exitValidation, code)

	var results map[string]ValidationOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &results))
	require.Contains(t, results, path)
	require.Len(t, results[path].Errors, 1)
	assert.Equal(t, 22, results[path].Errors[0].Line)
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gcode-check.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\nsuggest: false\n"), 0o644))

	code, stdout, _ := run(t, "--config", cfgPath, "validate", testFile("small_example_error.gcode"))
	assert.Equal(t, exitValidation, code)

	var results map[string]ValidationOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	for _, r := range results {
		require.Len(t, r.Errors, 1)
		assert.Empty(t, r.Errors[0].Suggestion)
	}
}

func TestValidateFlagOverridesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gcode-check.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format = \"json\"\n"), 0o644))

	code, stdout, _ := run(t, "--config", cfgPath, "validate", "-f", "text", testFile("small_example.gcode"))
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, ": OK (")
}

func TestBadConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gcode-check.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("colour: red\n"), 0o644))

	code, _, stderr := run(t, "--config", cfgPath, "validate", testFile("small_example.gcode"))
	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, stderr, "Error:")
}

func TestValidateVerboseLogsEvents(t *testing.T) {
	code, _, stderr := run(t, "-v", "validate", testFile("mixed_example.gcode"))

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, stderr, "validating")
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "command=M117")
}

func TestValidateEventLogThenEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.glog")

	code, _, _ := run(t, "validate", "--event-log", logPath,
		testFile("mixed_example.gcode"), testFile("small_example.gcode"))
	require.Equal(t, exitValidation, code)

	code, stdout, _ := run(t, "events", "--problems", logPath)
	require.Equal(t, exitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "UNSUPPORTED")
	assert.Contains(t, lines[0], "mixed_example.gcode:3 M117")
	assert.Contains(t, lines[2], "mixed_example.gcode:7 XYZ")

	code, stdout, _ = run(t, "events", "--kind", "complete", "--jsonl", logPath)
	require.Equal(t, exitSuccess, code)

	var outputs []EventOutput
	dec := json.NewDecoder(strings.NewReader(stdout))
	for {
		var e EventOutput
		err := dec.Decode(&e)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		outputs = append(outputs, e)
	}
	require.Len(t, outputs, 2)
	assert.Equal(t, "RUN_COMPLETE", outputs[0].Kind)
	require.NotNil(t, outputs[0].Summary)
	assert.Equal(t, 3, outputs[0].Summary.Errors)
	assert.Equal(t, 0, outputs[1].Summary.Errors)
}

func TestCommandsListSupported(t *testing.T) {
	code, stdout, _ := run(t, "commands")
	assert.Equal(t, exitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines, "G1")
	assert.Contains(t, lines, "M862")
	assert.NotContains(t, lines, "M117")
	assert.Equal(t, "G0", lines[0])
}

func TestCommandsListUnsupported(t *testing.T) {
	code, stdout, _ := run(t, "commands", "--unsupported")
	assert.Equal(t, exitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines, "M117")
	assert.NotContains(t, lines, "G1")
}

func TestCommandsClassify(t *testing.T) {
	code, stdout, _ := run(t, "commands", "M862.1", "M117", "GA1")
	assert.Equal(t, exitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^M862\.1\s+SUPPORTED\s+subcommand 1$`, lines[0])
	assert.Regexp(t, `^M117\s+UNSUPPORTED\s*$`, lines[1])
	assert.Regexp(t, `^GA1\s+INVALID\s+did you mean "G1"\?$`, lines[2])
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "gcode-check version "+version+"\n", stdout)
}

// scriptedReader replays lines, then returns io.EOF.
type scriptedReader struct {
	lines []string
	errs  map[int]error
	pos   int
}

func (s *scriptedReader) Readline() (string, error) {
	defer func() { s.pos++ }()
	if err, ok := s.errs[s.pos]; ok {
		return "", err
	}
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	return s.lines[s.pos], nil
}

func TestRunShell(t *testing.T) {
	rd := &scriptedReader{
		lines: []string{"G28", "", "M117 hi", "GA1 X1", "; comment"},
	}
	var out bytes.Buffer
	require.NoError(t, runShell(rd, &out))

	assert.Equal(t, strings.Join([]string{
		"1: SUPPORTED G28",
		"2: no command",
		"3: UNSUPPORTED M117",
		`4: INVALID GA1 (did you mean "G1"?)`,
		"5: no command",
	}, "\n")+"\n", out.String())
}

func TestRunShellState(t *testing.T) {
	rd := &scriptedReader{lines: []string{"G1", "state"}}
	var out bytes.Buffer
	require.NoError(t, runShell(rd, &out))

	assert.Equal(t, "1: SUPPORTED G1\n"+
		"units=mm coordinates=absolute bed=unset fan=off temperature=0 position=0,0,0\n", out.String())
}

func TestDescribeStateConfiguredBed(t *testing.T) {
	s := machine.NewState()
	s.Bed.Origin = &machine.Location{}
	s.Bed.Limit = &machine.Location{X: 250, Y: 210, Z: 200}
	s.Extruder.FanEnabled = true

	got := describeState(s)
	assert.Contains(t, got, "bed={0 0 0}..{250 210 200}")
	assert.Contains(t, got, "fan=on")
}

func TestRunShellExitAndInterrupt(t *testing.T) {
	rd := &scriptedReader{
		lines: []string{"G1", "ignored", "exit", "G1"},
		errs:  map[int]error{1: readline.ErrInterrupt},
	}
	var out bytes.Buffer
	require.NoError(t, runShell(rd, &out))
	assert.Equal(t, "1: SUPPORTED G1\n", out.String())
}

func TestRunShellReadError(t *testing.T) {
	errBoom := errors.New("tty gone")
	rd := &scriptedReader{errs: map[int]error{0: errBoom}}
	assert.ErrorIs(t, runShell(rd, io.Discard), errBoom)
}

func TestDescribeLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"M862.3 P \"MK3S\"", "9: SUPPORTED M862"},
		{"   ", "9: no command"},
		{"M999", "9: UNSUPPORTED M999"},
		{"QQQQQQ", "9: INVALID QQQQQQ"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, describeLine(tt.line, 9))
		})
	}
}
