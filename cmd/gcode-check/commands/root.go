// Package commands implements the gcode-check subcommands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/layerline/gcodecheck/pkg/config"
)

const version = "0.1.0"

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// errValidationFailed signals that at least one input failed validation.
// It maps to exitValidation and is not printed.
var errValidationFailed = errors.New("validation failed")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, cfg: config.Default()}

	root := &cobra.Command{
		Use:   "gcode-check",
		Short: "Validate G-code files",
		Long: `gcode-check validates G-code instruction files against the table of
supported commands.

Each line is reported as supported, known-but-unsupported, or invalid.
Invalid commands are reported with their line number.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newValidateCommand(a),
		newCommandsCommand(a),
		newShellCommand(a),
		newEventsCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errValidationFailed):
		return exitValidation
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
}

// setup loads the config file and builds the operational logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.verbose {
		a.cfg.Verbose = true
	}

	level, err := a.cfg.Level()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "gcode-check version %s\n", version)
		},
	}
}
