package builtins

import (
	"fmt"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

// GetLocation prints the current working location.
func GetLocation(inv *session.Invocation) int {
	fmt.Fprintln(inv.IO.Out, inv.Session.Cwd())
	return 0
}

func setLocationMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0).
			WithDefault("~").
			WithHelp("location to change to"),
	)
}

// SetLocation changes the current working location.
func SetLocation(inv *session.Invocation) int {
	rp, item, err := inv.Session.Providers.ResolveLiteral(inv.Session.Cwd(), inv.Args.GetString("Path"))
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
		return 1
	}
	if !item.Container {
		fmt.Fprintf(inv.IO.Err, "%s: %s: not a container\n", inv.Name, rp)
		return 1
	}
	inv.Session.SetCwd(rp)
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Get-Location", NamespaceManagement,
		"Print the current working location.",
		command.NewMetadata(), GetLocation))
	mustAdd(newBuiltin(
		"Set-Location", NamespaceManagement,
		"Change the current working location.",
		setLocationMetadata(), SetLocation))
}
