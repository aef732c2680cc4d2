package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/layerline/gcodecheck/pkg/log"
)

// maxLineLength bounds a single line, newline included. Longer lines fail
// the run with an IOError wrapping bufio.ErrTooLong.
const maxLineLength = 1 << 20

// Report contains the results of validating one input.
type Report struct {
	// RunID identifies the run in the event log.
	RunID string

	// Source names the input, empty for anonymous readers.
	Source string

	// Lines is the number of lines read.
	Lines int

	// Commands is the number of supported commands seen.
	Commands int

	// Errors holds one *InvalidCommandError or *UnsupportedCommandError per
	// offending line, in line order.
	Errors []error
}

// Valid returns true if no line produced an error.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Count returns the number of errors matching target via errors.Is.
func (r *Report) Count(target error) int {
	n := 0
	for _, err := range r.Errors {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

// Validator checks G-code input line by line.
type Validator struct {
	// Logger receives one event per non-empty line plus run events.
	// Nil disables event capture.
	Logger log.Logger
}

// NewValidator creates a new Validator with event capture disabled.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reads r to the end and classifies every line.
//
// Content errors are collected in the report. A read failure aborts the run
// and returns an *IOError with a nil report.
func (v *Validator) Validate(r io.Reader) (*Report, error) {
	return v.validate(r, "", uuid.NewString())
}

// ValidateFile validates the file at path. Failing to open the file is an
// *IOError. The file is closed before ValidateFile returns.
func (v *Validator) ValidateFile(path string) (*Report, error) {
	runID := uuid.NewString()

	f, err := os.Open(path)
	if err != nil {
		ioErr := &IOError{Err: err}
		v.emit(log.Event{RunID: runID, Source: path, Kind: log.KindIOFailure, Message: ioErr.Error()})
		return nil, ioErr
	}
	defer f.Close()

	return v.validate(f, path, runID)
}

func (v *Validator) validate(r io.Reader, source, runID string) (*Report, error) {
	report := &Report{RunID: runID, Source: source}

	br := bufio.NewReader(r)
	lineNum := 0

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			// A fragment read before the fault is not a complete line.
			return nil, v.failRead(report, lineNum+1, err)
		}
		if err == io.EOF && line == "" {
			break
		}

		lineNum++
		if len(line) > maxLineLength {
			return nil, v.failRead(report, lineNum, bufio.ErrTooLong)
		}
		line = strings.TrimRight(line, "\r\n")

		base, cmd, perr := parseLine(line, lineNum)
		switch {
		case perr != nil:
			report.Errors = append(report.Errors, perr)
			v.emitLine(report, lineNum, base, perr)
		case cmd != nil:
			report.Commands++
			v.emitLine(report, lineNum, base, nil)
		}

		if err == io.EOF {
			break
		}
	}

	report.Lines = lineNum
	v.emit(log.Event{
		RunID:  runID,
		Source: source,
		Kind:   log.KindRunComplete,
		Summary: &log.RunSummary{
			Lines:    report.Lines,
			Commands: report.Commands,
			Errors:   len(report.Errors),
		},
	})

	return report, nil
}

// failRead records a read failure on line and returns it as an *IOError.
func (v *Validator) failRead(report *Report, line int, err error) error {
	ioErr := &IOError{Err: fmt.Errorf("line %d: %w", line, err)}
	v.emit(log.Event{
		RunID:   report.RunID,
		Source:  report.Source,
		Line:    line,
		Kind:    log.KindIOFailure,
		Message: ioErr.Error(),
	})
	return ioErr
}

// emitLine records the verdict of one line. The event carries the line
// number for every kind, including unsupported commands.
func (v *Validator) emitLine(report *Report, line int, base string, err error) {
	event := log.Event{
		RunID:   report.RunID,
		Source:  report.Source,
		Line:    line,
		Kind:    log.KindSupported,
		Command: base,
	}

	switch {
	case errors.Is(err, ErrUnsupportedCommand):
		event.Kind = log.KindUnsupported
		event.Message = err.Error()
	case err != nil:
		event.Kind = log.KindInvalid
		event.Message = err.Error()
	}

	v.emit(event)
}

func (v *Validator) emit(event log.Event) {
	if v.Logger == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	v.Logger.Log(event)
}

// Validate is a convenience function to validate a reader with a default
// Validator.
func Validate(r io.Reader) (*Report, error) {
	return NewValidator().Validate(r)
}

// ValidateFile is a convenience function to validate a file with a default
// Validator.
func ValidateFile(path string) (*Report, error) {
	return NewValidator().ValidateFile(path)
}
