package builtins

import (
	"fmt"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

func writeOutputMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("InputObject", command.TypeStringSlice).Remaining().
			WithHelp("values to write"),
		command.NewParameter("Separator", command.TypeString).
			WithDefault(" ").
			WithHelp("string placed between values"),
		command.NewParameter("NoNewline", command.TypeSwitch).
			WithHelp("omit the trailing newline"),
	)
}

// WriteOutput joins its arguments and prints them.
func WriteOutput(inv *session.Invocation) int {
	out := strings.Join(inv.Args.GetStrings("InputObject"), inv.Args.GetString("Separator"))
	if inv.Args.GetBool("NoNewline") {
		fmt.Fprint(inv.IO.Out, out)
	} else {
		fmt.Fprintln(inv.IO.Out, out)
	}
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Write-Output", NamespaceUtility,
		"Join arguments and print them.",
		writeOutputMetadata(), WriteOutput))
}
