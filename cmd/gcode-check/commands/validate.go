package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/layerline/gcodecheck/pkg/config"
	"github.com/layerline/gcodecheck/pkg/gcode"
	"github.com/layerline/gcodecheck/pkg/log"
)

// Issue codes used in reports.
const (
	issueInvalid     = "INVALID"
	issueUnsupported = "UNSUPPORTED"
	issueIO          = "IO"
)

// ValidationOutput represents the validation result for a file.
type ValidationOutput struct {
	Valid    bool          `json:"valid" yaml:"valid"`
	RunID    string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Lines    int           `json:"lines" yaml:"lines"`
	Commands int           `json:"commands" yaml:"commands"`

	Invalid     int `json:"invalid" yaml:"invalid"`
	Unsupported int `json:"unsupported" yaml:"unsupported"`

	Errors   []IssueOutput `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// IssueOutput represents a single reported problem.
type IssueOutput struct {
	Code       string `json:"code" yaml:"code"`
	Command    string `json:"command,omitempty" yaml:"command,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

type validateOptions struct {
	format   string
	suggest  bool
	eventLog string
}

func newValidateCommand(a *app) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [flags] <files...>",
		Short: "Validate G-code files",
		Long: `Validate G-code files line by line.

Exit status is 0 when every file is valid, 2 when any file contains an
unsupported or invalid command or cannot be read, and 1 on usage errors.`,
		Example: `  gcode-check validate benchy.gcode
  gcode-check validate --format json --event-log run.glog *.gcode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.apply(cmd, a.cfg)
			return runValidate(a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.OutputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.suggest, "suggest", true, "Suggest the closest known command for invalid commands")
	cmd.Flags().StringVar(&opts.eventLog, "event-log", "", "Append CBOR validation events to this file")
	return cmd
}

// apply fills options the user did not set on the command line from the
// config file.
func (o *validateOptions) apply(cmd *cobra.Command, cfg config.Config) {
	if !cmd.Flags().Changed("format") {
		o.format = cfg.Format
	}
	if !cmd.Flags().Changed("suggest") {
		o.suggest = cfg.Suggest
	}
	if !cmd.Flags().Changed("event-log") {
		o.eventLog = cfg.EventLog
	}
}

func runValidate(a *app, opts *validateOptions, files []string) error {
	if len(files) == 0 {
		return errors.New("no files specified")
	}
	switch opts.format {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	default:
		return fmt.Errorf("invalid format %q (want text, json or yaml)", opts.format)
	}

	var slogEvents, fileEvents log.Logger
	if a.logger.Enabled(context.Background(), slog.LevelDebug) {
		slogEvents = log.NewSlogAdapter(a.logger)
	}
	var fl *log.FileLogger
	if opts.eventLog != "" {
		var err error
		if fl, err = log.NewFileLogger(opts.eventLog); err != nil {
			return fmt.Errorf("failed to open event log: %w", err)
		}
		defer fl.Close()
		fileEvents = fl
	}

	validator := gcode.NewValidator()
	validator.Logger = log.Tee(slogEvents, fileEvents)

	hasErrors := false
	results := make(map[string]*ValidationOutput, len(files))

	for _, file := range files {
		a.logger.Debug("validating", slog.String("file", file))

		result := validateFile(validator, file, opts.suggest)
		results[file] = result
		if !result.Valid {
			hasErrors = true
		}

		if opts.format == config.OutputText {
			printValidationResult(a.stdout, file, result)
		}
	}

	switch opts.format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
	case config.OutputYAML:
		data, err := yaml.Marshal(results)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, string(data))
	}

	if fl != nil {
		if err := fl.Close(); err != nil {
			return fmt.Errorf("failed to write event log: %w", err)
		}
		a.logger.Debug("event log written",
			slog.String("path", opts.eventLog), slog.Int("events", fl.Written()))
	}

	if hasErrors {
		return errValidationFailed
	}
	return nil
}

func validateFile(v *gcode.Validator, path string, suggest bool) *ValidationOutput {
	report, err := v.ValidateFile(path)
	if err != nil {
		return &ValidationOutput{
			Valid:  false,
			Errors: []IssueOutput{{Code: issueIO, Message: err.Error()}},
		}
	}

	output := &ValidationOutput{
		Valid:    report.Valid(),
		RunID:    report.RunID,
		Lines:    report.Lines,
		Commands: report.Commands,

		Invalid:     report.Count(gcode.ErrInvalidCommand),
		Unsupported: report.Count(gcode.ErrUnsupportedCommand),
	}
	for _, e := range report.Errors {
		output.Errors = append(output.Errors, issueFor(e, suggest))
	}
	return output
}

// issueFor converts a content error from the validator into an IssueOutput.
func issueFor(err error, suggest bool) IssueOutput {
	var invalid *gcode.InvalidCommandError
	var unsupported *gcode.UnsupportedCommandError

	switch {
	case errors.As(err, &invalid):
		issue := IssueOutput{
			Code:    issueInvalid,
			Command: invalid.Command,
			Line:    invalid.Line,
			Message: fmt.Sprintf("invalid command %q", invalid.Command),
		}
		if suggest && invalid.Command != "" {
			issue.Suggestion = gcode.Suggest(invalid.Command)
		}
		return issue
	case errors.As(err, &unsupported):
		return IssueOutput{
			Code:    issueUnsupported,
			Command: unsupported.Command,
			Message: fmt.Sprintf("command %q is not supported yet", unsupported.Command),
		}
	default:
		return IssueOutput{Code: issueIO, Message: err.Error()}
	}
}

func printValidationResult(w io.Writer, file string, result *ValidationOutput) {
	if result.Valid {
		fmt.Fprintf(w, "%s: OK (%d lines, %d commands)\n", file, result.Lines, result.Commands)
		return
	}

	if result.Invalid+result.Unsupported > 0 {
		fmt.Fprintf(w, "%s: FAILED (%d errors: %d invalid, %d unsupported)\n",
			file, len(result.Errors), result.Invalid, result.Unsupported)
	} else {
		fmt.Fprintf(w, "%s: FAILED (%d errors)\n", file, len(result.Errors))
	}
	for _, e := range result.Errors {
		msg := e.Message
		if e.Suggestion != "" {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, e.Suggestion)
		}
		if e.Line > 0 {
			fmt.Fprintf(w, "  ERROR [line %d] %s: %s\n", e.Line, e.Code, msg)
		} else {
			fmt.Fprintf(w, "  ERROR %s: %s\n", e.Code, msg)
		}
	}
}
