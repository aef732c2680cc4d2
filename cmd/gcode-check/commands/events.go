package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/layerline/gcodecheck/pkg/log"
)

type eventsOptions struct {
	kind     string
	runID    string
	source   string
	problems bool
	jsonl    bool
	stats    bool
}

// EventOutput is the JSON form of a validation event.
type EventOutput struct {
	Timestamp time.Time       `json:"timestamp"`
	RunID     string          `json:"run_id"`
	Source    string          `json:"source,omitempty"`
	Line      int             `json:"line,omitempty"`
	Kind      string          `json:"kind"`
	Command   string          `json:"command,omitempty"`
	Message   string          `json:"message,omitempty"`
	Summary   *log.RunSummary `json:"summary,omitempty"`
}

func newEventsCommand(a *app) *cobra.Command {
	opts := &eventsOptions{}

	cmd := &cobra.Command{
		Use:   "events [flags] <file.glog>",
		Short: "View a validation event log",
		Long: `Print the events of a CBOR event log written by "validate --event-log".`,
		Example: `  gcode-check events run.glog
  gcode-check events --problems --source benchy.gcode run.glog
  gcode-check events --kind invalid --jsonl run.glog`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEvents(a.stdout, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "Filter by kind (supported, unsupported, invalid, io, complete)")
	cmd.Flags().StringVar(&opts.runID, "run", "", "Filter by run ID")
	cmd.Flags().StringVar(&opts.source, "source", "", "Filter by source file")
	cmd.Flags().BoolVar(&opts.problems, "problems", false, "Only unsupported, invalid and I/O failure events")
	cmd.Flags().BoolVar(&opts.jsonl, "jsonl", false, "Output one JSON object per line")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print counts per kind instead of events")
	return cmd
}

func (o *eventsOptions) filter() (log.Filter, error) {
	f := log.Filter{
		RunID:        o.runID,
		Source:       o.source,
		ProblemsOnly: o.problems,
	}
	if o.kind != "" {
		k, ok := log.ParseKind(o.kind)
		if !ok {
			return log.Filter{}, fmt.Errorf("unknown kind %q", o.kind)
		}
		f.Kind = &k
	}
	return f, nil
}

func runEvents(w io.Writer, path string, opts *eventsOptions) error {
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer reader.Close()

	counts := make(map[log.Kind]int)
	encoder := json.NewEncoder(w)

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		switch {
		case opts.stats:
			counts[event.Kind]++
		case opts.jsonl:
			if err := encoder.Encode(toEventOutput(event)); err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
		default:
			formatEvent(w, event)
		}
	}

	if opts.stats {
		for k := log.KindSupported; k <= log.KindRunComplete; k++ {
			fmt.Fprintf(w, "%-13s %d\n", k, counts[k])
		}
	}
	return nil
}

func toEventOutput(e log.Event) EventOutput {
	return EventOutput{
		Timestamp: e.Timestamp,
		RunID:     e.RunID,
		Source:    e.Source,
		Line:      e.Line,
		Kind:      e.Kind.String(),
		Command:   e.Command,
		Message:   e.Message,
		Summary:   e.Summary,
	}
}

// formatEvent writes a one-line, human-readable representation of the event.
func formatEvent(w io.Writer, e log.Event) {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	loc := e.Source
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}

	fmt.Fprintf(w, "%s [run:%s] %-12s %s", ts, shortenRunID(e.RunID), e.Kind, loc)
	if e.Command != "" {
		fmt.Fprintf(w, " %s", e.Command)
	}
	if e.Summary != nil {
		fmt.Fprintf(w, " lines=%d commands=%d errors=%d", e.Summary.Lines, e.Summary.Commands, e.Summary.Errors)
	}
	if e.Message != "" && e.Kind == log.KindIOFailure {
		fmt.Fprintf(w, " %s", e.Message)
	}
	fmt.Fprintln(w)
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
