// Package gcode validates G-code instruction files against a fixed table of
// recognized commands.
//
// # Line Format
//
// Each line holds at most one instruction: a command token followed by
// parameter tokens, separated by whitespace. A semicolon starts a comment
// that runs to the end of the line:
//
//	G1 X116.259 Y130.177 E0.04011 ; skirt
//	M862.1 P0.4                   ; nozzle diameter check
//	; a comment-only line
//
// The command token may carry a dotted subcommand (M862.1). Only the base
// command before the dot takes part in classification.
//
// # Classification
//
// The base command falls into exactly one of three groups:
//   - Supported: accepted, yields a [Command]
//   - Known-unsupported: real machine syntax not handled yet, reported as
//     [UnsupportedCommandError] without a line number
//   - Invalid: anything else, reported as [InvalidCommandError] with the
//     1-based line number
//
// Parameter tokens are not interpreted. Every supported command yields the
// same zero-valued [Command].
//
// # Validation
//
// [Validator] runs [ParseLine] over a whole stream and collects the content
// errors into a [Report]. A read failure aborts the run with an [IOError]
// and discards the partial report.
package gcode
