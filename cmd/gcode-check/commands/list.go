package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/layerline/gcodecheck/pkg/gcode"
)

func newCommandsCommand(a *app) *cobra.Command {
	var unsupported bool

	cmd := &cobra.Command{
		Use:   "commands [tokens...]",
		Short: "List or classify commands",
		Long: `Without arguments, list the supported commands (or the known-unsupported
ones with --unsupported). With arguments, classify each command token.`,
		Example: `  gcode-check commands
  gcode-check commands --unsupported
  gcode-check commands M862.1 M117 GA1`,
		Run: func(_ *cobra.Command, args []string) {
			if len(args) > 0 {
				printClassification(a.stdout, args)
				return
			}
			list := gcode.SupportedCommands()
			if unsupported {
				list = gcode.UnsupportedCommands()
			}
			for _, c := range list {
				fmt.Fprintln(a.stdout, c)
			}
		},
	}

	cmd.Flags().BoolVar(&unsupported, "unsupported", false, "List known-unsupported commands instead")
	return cmd
}

func printClassification(w io.Writer, tokens []string) {
	width := 0
	for _, token := range tokens {
		width = max(width, len(token))
	}

	for _, token := range tokens {
		base, sub := gcode.SplitCommand(token)
		verdict := gcode.Classify(base)

		detail := ""
		if sub != "" {
			detail = "subcommand " + sub
		}
		if verdict == gcode.VerdictInvalid {
			if s := gcode.Suggest(base); s != "" {
				detail = fmt.Sprintf("did you mean %q?", s)
			}
		}
		line := fmt.Sprintf("%-*s  %-11s  %s", width, token, verdict, detail)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
