package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logOne(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsLineEvent(t *testing.T) {
	entry := logOne(t, Event{
		Timestamp: time.Now(),
		RunID:     "run-123",
		Source:    "part.gcode",
		Line:      22,
		Kind:      KindInvalid,
		Command:   "GA1",
		Message:   "line 22: invalid command",
	})

	want := map[string]any{
		"msg":     "gcode",
		"level":   "WARN",
		"run_id":  "run-123",
		"kind":    "INVALID",
		"source":  "part.gcode",
		"command": "GA1",
		"detail":  "line 22: invalid command",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
	// JSON numbers decode as float64
	if entry["line"] != float64(22) {
		t.Errorf("line: got %v, want 22", entry["line"])
	}
}

func TestSlogAdapterSupportedAtDebug(t *testing.T) {
	entry := logOne(t, Event{RunID: "run-1", Line: 3, Kind: KindSupported, Command: "G1"})

	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v, want DEBUG", entry["level"])
	}
	if _, ok := entry["detail"]; ok {
		t.Error("detail should be omitted when empty")
	}
}

func TestSlogAdapterLogsSummary(t *testing.T) {
	entry := logOne(t, Event{
		RunID:   "run-1",
		Kind:    KindRunComplete,
		Summary: &RunSummary{Lines: 40, Commands: 35, Errors: 1},
	})

	if entry["lines"] != float64(40) || entry["commands"] != float64(35) || entry["errors"] != float64(1) {
		t.Errorf("summary attrs missing: %v", entry)
	}
	if _, ok := entry["line"]; ok {
		t.Error("line should be omitted for run events")
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{RunID: "run-1", Kind: KindSupported, Command: "G1"})
	if buf.Len() != 0 {
		t.Errorf("supported event should be filtered at Info level, got %q", buf.String())
	}

	adapter.Log(Event{RunID: "run-1", Kind: KindUnsupported, Command: "M117"})
	if buf.Len() == 0 {
		t.Error("unsupported event should pass at Info level")
	}
}
