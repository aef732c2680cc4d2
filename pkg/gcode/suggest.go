package gcode

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

type suggestion struct {
	command   string
	distance  int
	supported bool
}

// Suggest returns the known command closest to command by edit distance,
// or "" if none is close enough. Supported commands win ties over
// known-unsupported ones, then the lexically smaller command wins.
func Suggest(command string) string {
	if command == "" {
		return ""
	}

	var cands []suggestion
	for c, verdict := range verdicts {
		dist := levenshtein.ComputeDistance(command, c)
		if dist > suggestLimit(len(c)) {
			continue
		}
		cands = append(cands, suggestion{
			command:   c,
			distance:  dist,
			supported: verdict == VerdictSupported,
		})
	}
	if len(cands) == 0 {
		return ""
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.supported != b.supported {
			return a.supported
		}
		return a.command < b.command
	})
	return cands[0].command
}

// suggestLimit is the largest edit distance accepted for a candidate of the
// given length.
func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
