package builtins

import (
	"fmt"
	"text/tabwriter"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

func getVariableMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).
			WithDefault("*").
			WithHelp("name or pattern of variables to show"),
		command.NewParameter("ValueOnly", command.TypeSwitch).
			WithHelp("print values without names"),
	)
}

// GetVariable prints session variables matching a name or pattern.
func GetVariable(inv *session.Invocation) int {
	name := inv.Args.GetString("Name")
	matcher, err := wildcard.Compile(name, true)
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: bad pattern %q: %v\n", inv.Name, name, err)
		return 1
	}

	var names []string
	for _, n := range inv.Session.VarNames() {
		if matcher.Match(n) {
			names = append(names, n)
		}
	}
	if len(names) == 0 && !wildcard.HasMeta(name) {
		fmt.Fprintf(inv.IO.Err, "%s: no variable named %q\n", inv.Name, name)
		return 1
	}

	if inv.Args.GetBool("ValueOnly") {
		for _, n := range names {
			v, _ := inv.Session.LookupVar(n)
			fmt.Fprintln(inv.IO.Out, v)
		}
		return 0
	}

	tw := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tValue\n")
	fmt.Fprintf(tw, "----\t-----\n")
	for _, n := range names {
		v, _ := inv.Session.LookupVar(n)
		fmt.Fprintf(tw, "%s\t%v\n", n, v)
	}
	tw.Flush()
	return 0
}

func setVariableMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).Required().
			WithHelp("name of the variable"),
		command.NewParameter("Value", command.TypeAny).At(1).Required().
			WithHelp("value to assign"),
		command.NewParameter("Global", command.TypeSwitch).
			WithHelp("set the variable in the global scope"),
	)
}

// SetVariable assigns a session variable.
func SetVariable(inv *session.Invocation) int {
	scope := inv.Session.CurrentScope()
	if inv.Args.GetBool("Global") {
		scope = inv.Session.GlobalScope()
	}
	scope.Vars.SetVar(inv.Args.GetString("Name"), inv.Args.Values["Value"])
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Get-Variable", NamespaceUtility,
		"Print session variables.",
		getVariableMetadata(), GetVariable))
	mustAdd(newBuiltin(
		"Set-Variable", NamespaceUtility,
		"Assign a session variable.",
		setVariableMetadata(), SetVariable))
}
