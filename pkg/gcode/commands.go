package gcode

import (
	"sort"
	"strings"
)

// Verdict is the classification outcome for a base command.
type Verdict uint8

const (
	// VerdictInvalid means the command matched neither table.
	VerdictInvalid Verdict = iota
	// VerdictSupported means the command is accepted.
	VerdictSupported
	// VerdictUnsupported means the command is known machine syntax that is
	// not handled yet.
	VerdictUnsupported
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictSupported:
		return "SUPPORTED"
	case VerdictUnsupported:
		return "UNSUPPORTED"
	case VerdictInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// supportedCommands lists the commands accepted by the parser.
var supportedCommands = []string{
	// G commands
	"G0", "G1", "G2", "G3", "G4", "G10", "G11", "G21", "G28", "G29",
	"G80", "G90", "G91", "G92",

	// M commands
	"M73", "M82", "M83", "M84", "M104", "M106", "M107", "M109", "M112",
	"M115", "M140", "M190", "M201", "M203", "M204", "M205", "M221",
	"M500", "M501", "M502", "M600", "M701", "M702", "M862", "M900",
}

// unsupportedCommands lists real machine commands that are recognized but
// not handled yet. Move an entry to supportedCommands once it is.
var unsupportedCommands = []string{
	"G5", "G6", "G12", "G17", "G18", "G19", "G20", "G26", "G27", "G30",
	"G31", "G32", "G33", "G34", "G35", "G38", "G42", "G53", "G54", "G55",
	"G56", "G57", "G58", "G59", "G60", "G61", "G76", "G425",

	"M0", "M1", "M3", "M4", "M5", "M7", "M8", "M9", "M10", "M11",
	"M16", "M17", "M18", "M20", "M21", "M22", "M23", "M24", "M25", "M26",
	"M27", "M28", "M29", "M30", "M31", "M32", "M33", "M34", "M42", "M43",
	"M48", "M75", "M76", "M77", "M78", "M85", "M92", "M100", "M110", "M111",
	"M114", "M117", "M118", "M119", "M120", "M121", "M122", "M125", "M126", "M127",
	"M128", "M129", "M141", "M143", "M145", "M149", "M150", "M154", "M155", "M163",
	"M164", "M165", "M166", "M192", "M193", "M200", "M202", "M206", "M207", "M208",
	"M209", "M210", "M211", "M212", "M218", "M220", "M226", "M240", "M241", "M245",
	"M246", "M300", "M301", "M302", "M303", "M304", "M305", "M306", "M307", "M310",
	"M320", "M321", "M322", "M323", "M340", "M350", "M351", "M355", "M360", "M361",
	"M362", "M363", "M364", "M365", "M380", "M381", "M400", "M401", "M402", "M404",
	"M405", "M406", "M407", "M410", "M412", "M420", "M421", "M422", "M425", "M428",
	"M503", "M540", "M601", "M602", "M603", "M604", "M605", "M665", "M666", "M851",
	"M852", "M860", "M861", "M863", "M864", "M865", "M866", "M867", "M868", "M869",
	"M871", "M906", "M907", "M908", "M909", "M910", "M911", "M912", "M913", "M914",
	"M915", "M916", "M917", "M918", "M920", "M921", "M922", "M923", "M924", "M925",
	"M926", "M927", "M928", "M929", "M930", "M931", "M932", "M933", "M934", "M935",
	"M936", "M937", "M938", "M939", "M940", "M941", "M942", "M943", "M944", "M945",
	"M946", "M947", "M948", "M949", "M950", "M951", "M952", "M953", "M954", "M955",
	"M956", "M957", "M958", "M959", "M960", "M961", "M962", "M963", "M964", "M965",
	"M966", "M967", "M968", "M969", "M970", "M971", "M972", "M973", "M974", "M975",
	"M976", "M977", "M978", "M979", "M980", "M981", "M982", "M983", "M984", "M985",
	"M986", "M987", "M988", "M989", "M990", "M991", "M992", "M993", "M994", "M995",
	"M996", "M997", "M998", "M999",
}

// verdicts indexes both tables. It is built once and only read afterwards.
var verdicts = buildVerdicts()

func buildVerdicts() map[string]Verdict {
	m := make(map[string]Verdict, len(supportedCommands)+len(unsupportedCommands))
	for _, c := range supportedCommands {
		m[c] = VerdictSupported
	}
	for _, c := range unsupportedCommands {
		if _, dup := m[c]; dup {
			panic("gcode: command listed as both supported and unsupported: " + c)
		}
		m[c] = VerdictUnsupported
	}
	return m
}

// SplitCommand splits a command token into its base command and the dotted
// subcommand suffix, if any. "M862.1" yields ("M862", "1").
func SplitCommand(token string) (base, sub string) {
	base, sub, _ = strings.Cut(token, ".")
	return base, sub
}

// Classify reports which group a base command belongs to. Matching is exact
// and case-sensitive.
func Classify(base string) Verdict {
	if v, ok := verdicts[base]; ok {
		return v
	}
	return VerdictInvalid
}

// SupportedCommands returns the supported commands in sorted order.
func SupportedCommands() []string {
	return sortedCopy(supportedCommands)
}

// UnsupportedCommands returns the known-unsupported commands in sorted order.
func UnsupportedCommands() []string {
	return sortedCopy(unsupportedCommands)
}

// sortedCopy orders commands by letter, then numerically.
func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return out
}
