package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/layerline/gcodecheck/pkg/gcode"
	"github.com/layerline/gcodecheck/pkg/machine"
)

// lineReader is the part of *readline.Instance used by the shell.
type lineReader interface {
	Readline() (string, error)
}

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Classify lines interactively",
		Long: `Read G-code lines from the terminal and print the verdict for each.
Lines are numbered from 1 as in a file. Type "state" to show the machine
state and "exit" or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "gcode> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          a.stdout,
				Stderr:          a.stderr,
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			return runShell(rl, rl.Stdout())
		},
	}
}

// runShell classifies each line read from rd until exit or EOF.
func runShell(rd lineReader, out io.Writer) error {
	state := machine.NewState()
	lineNum := 0
	for {
		line, err := rd.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit":
			return nil
		case "state":
			fmt.Fprintln(out, describeState(state))
			continue
		}

		lineNum++
		fmt.Fprintln(out, describeLine(line, lineNum))
	}
}

// describeLine returns the verdict for one line in human-readable form.
func describeLine(line string, lineNum int) string {
	cmd, err := gcode.ParseLine(line, lineNum)

	var invalid *gcode.InvalidCommandError
	var unsupported *gcode.UnsupportedCommandError

	switch {
	case err == nil && cmd == nil:
		return fmt.Sprintf("%d: no command", lineNum)
	case err == nil:
		base, _ := gcode.SplitCommand(gcode.Tokenize(line)[0])
		return fmt.Sprintf("%d: %s %s", lineNum, gcode.VerdictSupported, base)
	case errors.As(err, &unsupported):
		return fmt.Sprintf("%d: %s %s", lineNum, gcode.VerdictUnsupported, unsupported.Command)
	case errors.As(err, &invalid):
		msg := fmt.Sprintf("%d: %s %s", lineNum, gcode.VerdictInvalid, invalid.Command)
		if s := gcode.Suggest(invalid.Command); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return msg
	default:
		return fmt.Sprintf("%d: error: %v", lineNum, err)
	}
}

// describeState summarizes the machine state on one line. Lines entered in
// the shell are only classified, so this always shows the boot state.
func describeState(s *machine.State) string {
	bed := "unset"
	if s.Bed.Configured() {
		bed = fmt.Sprintf("%v..%v", *s.Bed.Origin, *s.Bed.Limit)
	}
	fan := "off"
	if s.Extruder.FanEnabled {
		fan = "on"
	}
	p := s.Extruder.Position
	return fmt.Sprintf("units=%s coordinates=%s bed=%s fan=%s temperature=%g position=%g,%g,%g",
		s.Units, s.Coordinates, bed, fan, s.Extruder.Temperature, p.X, p.Y, p.Z)
}
