package builtins

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

func getAliasMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).
			WithDefault("*").
			WithHelp("name or wildcard pattern of the aliases to list"),
		command.NewParameter("Definition", command.TypeString).
			WithHelp("only list aliases whose target command matches"),
		command.NewParameter("AllScopes", command.TypeSwitch).
			WithHelp("include definitions shadowed by inner scopes"),
	)
}

// GetAlias lists the aliases of the session.
func GetAlias(inv *session.Invocation) int {
	name := inv.Args.GetString("Name")
	matcher, err := wildcard.Compile(name, true)
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: bad pattern %q: %v\n", inv.Name, name, err)
		return 1
	}
	target := inv.Args.GetString("Definition")

	var out []*command.AliasInfo
	for _, a := range inv.Session.Aliases(inv.Args.GetBool("AllScopes")) {
		if !matcher.Match(a.Name()) {
			continue
		}
		if target != "" && !strings.EqualFold(aliasTarget(a), target) {
			continue
		}
		out = append(out, a)
	}

	if len(out) == 0 {
		if !wildcard.HasMeta(name) {
			fmt.Fprintf(inv.IO.Err, "%s: no alias named %q\n", inv.Name, name)
			return 1
		}
		return 0
	}

	w := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tDefinition")
	fmt.Fprintln(w, "----\t----------")
	for _, a := range out {
		fmt.Fprintf(w, "%s\t%s\n", a.Name(), a.Definition)
	}
	w.Flush()
	return 0
}

// aliasTarget returns the command an alias resolves to, the first word
// of its definition.
func aliasTarget(a *command.AliasInfo) string {
	fields := strings.Fields(a.Definition)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func setAliasMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).Required().
			WithHelp("name of the alias to create or update"),
		command.NewParameter("Value", command.TypeString).At(1).Required().
			WithHelp("command the alias expands to"),
		command.NewParameter("Description", command.TypeString).
			WithHelp("free form description"),
		command.NewParameter("Scope", command.TypeString).
			WithDefault("local").
			WithValidator(oneOf("local", "global")).
			WithHelp("scope the alias is defined in (local|global)"),
	)
}

// SetAlias creates or updates an alias.
func SetAlias(inv *session.Invocation) int {
	scope := inv.Session.CurrentScope()
	if strings.EqualFold(inv.Args.GetString("Scope"), "global") {
		scope = inv.Session.GlobalScope()
	}

	scope.Aliases.Set(&command.AliasInfo{
		AliasName:   inv.Args.GetString("Name"),
		Definition:  inv.Args.GetString("Value"),
		Description: inv.Args.GetString("Description"),
		Mode:        inv.Session.CurrentMode(),
	})
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Get-Alias", NamespaceUtility,
		"List the aliases of the current session.",
		getAliasMetadata(), GetAlias))
	mustAdd(newBuiltin(
		"Set-Alias", NamespaceUtility,
		"Create or update an alias.",
		setAliasMetadata(), SetAlias))
}
