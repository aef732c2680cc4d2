// Package log captures validation events for gcodecheck.
//
// This package defines the Logger interface and the Event type used to
// record how each line of a G-code file was classified. It is separate from
// operational logging (slog): the event log is a machine-readable trace of a
// validation run that can be filtered and replayed later.
//
// # Basic Usage
//
// Callers hand a Logger to the validator:
//
//	// For development: log to console via slog
//	v.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a CBOR file
//	v.Logger, _ = log.NewFileLogger("run.glog")
//
//	// Both: Tee skips nil loggers
//	v.Logger = log.Tee(log.NewSlogAdapter(slog.Default()), fileLogger)
//
// # Event Kinds
//
// Every non-empty line produces one event of kind Supported, Unsupported or
// Invalid. A read failure produces an IOFailure event and a finished run a
// RunComplete event carrying the totals.
//
// # File Format
//
// Event files are a stream of CBOR-encoded events with integer keys,
// conventionally with the .glog extension. Reader and DecodeEvent reject
// events no validator writes, such as an unknown kind or a missing run ID.
// The gcode-check events command reads them back.
package log
