package builtins

import (
	"fmt"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

// ClearHost clears the terminal.
func ClearHost(inv *session.Invocation) int {
	// Assumes VT100 compatibility.
	fmt.Fprintf(inv.IO.Out, "\033[2J\033[0;0H")
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Clear-Host", NamespaceCore,
		"Clear the terminal.",
		command.NewMetadata(), ClearHost))
}
