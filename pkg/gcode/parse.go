package gcode

// ParseLine parses a single line.
//
// Blank and comment-only lines return (nil, nil). A supported command
// returns a zero-valued Command. A known-unsupported command returns an
// UnsupportedCommandError, and anything else an InvalidCommandError carrying
// lineNumber.
func ParseLine(line string, lineNumber int) (*Command, error) {
	_, cmd, err := parseLine(line, lineNumber)
	return cmd, err
}

// parseLine is ParseLine that also reports the base command, empty for
// blank lines.
func parseLine(line string, lineNumber int) (string, *Command, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return "", nil, nil
	}

	// Subcommands such as M862.1 are classified by their base command.
	base, _ := SplitCommand(tokens[0])

	switch Classify(base) {
	case VerdictSupported:
		return base, &Command{}, nil
	case VerdictUnsupported:
		return base, nil, &UnsupportedCommandError{Command: base}
	default:
		return base, nil, &InvalidCommandError{Command: base, Line: lineNumber}
	}
}
