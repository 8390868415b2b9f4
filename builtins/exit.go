package builtins

import (
	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

func exitMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Code", command.TypeInt).At(0).
			WithDefault("0").
			WithHelp("status to exit with"),
	)
}

// Exit ends the session with the given status.
func Exit(inv *session.Invocation) int {
	code := inv.Args.GetInt("Code")
	if inv.Exit != nil {
		inv.Exit(code)
	}
	return code
}

func init() {
	mustAdd(newBuiltin(
		"Exit", NamespaceCore,
		"End the session.",
		exitMetadata(), Exit))
}
