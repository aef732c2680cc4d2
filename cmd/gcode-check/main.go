// gcode-check validates G-code files against the supported command table.
//
// Usage:
//
//	gcode-check <command> [flags] [args]
//
// Commands:
//
//	validate   Validate G-code files
//	commands   List or classify commands
//	shell      Classify lines interactively
//	events     View a validation event log
//	version    Show version information
//
// Examples:
//
//	gcode-check validate benchy.gcode
//	gcode-check validate --format json --event-log run.glog *.gcode
//	gcode-check commands M862.1 GA1
//	gcode-check events --problems run.glog
package main

import (
	"os"

	"github.com/layerline/gcodecheck/cmd/gcode-check/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
