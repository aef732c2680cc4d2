package gcode

import "strings"

// commentMarker starts an end-of-line comment.
const commentMarker = ';'

// Tokenize splits a line into its instruction tokens, dropping everything
// from the first semicolon onward. Blank and comment-only lines yield an
// empty slice.
func Tokenize(line string) []string {
	if line == "" {
		return []string{}
	}

	end := strings.IndexByte(line, commentMarker)
	switch {
	case end == 0:
		return []string{}
	case end < 0:
		end = len(line)
	}

	return strings.Fields(line[:end])
}
