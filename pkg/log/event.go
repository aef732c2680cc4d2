package log

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Event files use canonical CBOR with RFC 3339 timestamps so that two runs
// over the same input differ only in run ID and timestamps.
var (
	eventEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	eventDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: event encoder mode: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: event decoder mode: %v", err))
	}
	return m
}

// Event represents a single validation event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the validation run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Source names the validated input, usually a file path.
	Source string `cbor:"3,keyasint,omitempty"`

	// Line is the 1-based line number, 0 for run-level events.
	Line int `cbor:"4,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"5,keyasint"`

	// Command is the base command of the line, if any.
	Command string `cbor:"6,keyasint,omitempty"`

	// Message is a human-readable detail (error text or run summary).
	Message string `cbor:"7,keyasint,omitempty"`

	// Summary is set on RunComplete events.
	Summary *RunSummary `cbor:"8,keyasint,omitempty"`
}

// RunSummary holds the totals of a finished validation run.
type RunSummary struct {
	Lines    int `cbor:"1,keyasint"`
	Commands int `cbor:"2,keyasint"`
	Errors   int `cbor:"3,keyasint"`
}

// Kind classifies a validation event.
type Kind uint8

const (
	// KindSupported indicates a line with a supported command.
	KindSupported Kind = 0
	// KindUnsupported indicates a line with a known-unsupported command.
	KindUnsupported Kind = 1
	// KindInvalid indicates a line with an invalid command.
	KindInvalid Kind = 2
	// KindIOFailure indicates the input could not be read.
	KindIOFailure Kind = 3
	// KindRunComplete marks the end of a run that read all input.
	KindRunComplete Kind = 4
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSupported:
		return "SUPPORTED"
	case KindUnsupported:
		return "UNSUPPORTED"
	case KindInvalid:
		return "INVALID"
	case KindIOFailure:
		return "IO_FAILURE"
	case KindRunComplete:
		return "RUN_COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name, case-insensitively.
// Both the String form and the short forms "io" and "complete" are accepted.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUPPORTED":
		return KindSupported, true
	case "UNSUPPORTED":
		return KindUnsupported, true
	case "INVALID":
		return KindInvalid, true
	case "IO_FAILURE", "IO":
		return KindIOFailure, true
	case "RUN_COMPLETE", "COMPLETE":
		return KindRunComplete, true
	default:
		return 0, false
	}
}

// IsProblem returns true for kinds that make a run fail.
func (k Kind) IsProblem() bool {
	return k == KindUnsupported || k == KindInvalid || k == KindIOFailure
}

// check rejects decoded events no validator could have written.
func (e Event) check() error {
	if e.Kind > KindRunComplete {
		return fmt.Errorf("unknown kind %d", uint8(e.Kind))
	}
	if e.RunID == "" {
		return errors.New("missing run ID")
	}
	if e.Line < 0 {
		return fmt.Errorf("negative line %d", e.Line)
	}
	if e.Summary != nil && e.Kind != KindRunComplete {
		return fmt.Errorf("summary on %s event", e.Kind)
	}
	return nil
}

// EncodeEvent encodes an Event to CBOR with integer keys.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes one CBOR event and checks it is well formed.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := event.check(); err != nil {
		return Event{}, err
	}
	return event, nil
}
