package builtins

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/resolve"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

var kindNames = []string{"all", "alias", "function", "filter", "configuration", "builtin", "script", "application"}

var kindArguments = map[string]command.Kind{
	"all":           command.AllKinds,
	"alias":         command.Alias,
	"function":      command.Function,
	"filter":        command.Filter,
	"configuration": command.Configuration,
	"builtin":       command.Builtin,
	"script":        command.ExternalScript,
	"application":   command.Application,
}

func getCommandMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).
			WithDefault("*").
			WithHelp("name or wildcard pattern of the commands to find"),
		command.NewParameter("Kind", command.TypeString).
			WithDefault("all").
			WithValidator(oneOf(kindNames...)).
			WithHelp("restrict results to one command category"),
		command.NewParameter("AllScopes", command.TypeSwitch).
			WithHelp("include definitions shadowed by inner scopes"),
		colorParameter(),
	)
}

// GetCommand finds the commands a name resolves to, in resolution
// order.
func GetCommand(inv *session.Invocation) int {
	name := inv.Args.GetString("Name")
	kinds := kindArguments[strings.ToLower(inv.Args.GetString("Kind"))]

	opts := resolve.NameIsPattern | resolve.ResolveAliasPatterns | resolve.ResolveFunctionPatterns
	if inv.Args.GetBool("AllScopes") {
		opts |= resolve.SearchAllScopes
	}

	search := resolve.New(inv.Session).Search(resolve.Request{
		Name:    name,
		Kinds:   kinds,
		Options: opts,
		Origin:  resolve.OriginInternal,
	})
	matches, err := search.Collect()
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
		return 1
	}
	if len(matches) == 0 {
		if !wildcard.HasMeta(name) {
			fmt.Fprintf(inv.IO.Err, "%s: no command found named %q\n", inv.Name, name)
			return 1
		}
		return 0
	}

	cp := NewColorPrinter(inv.Args)
	w := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Kind\tName\tSource")
	fmt.Fprintln(w, "----\t----\t------")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Kind(), commandLabel(cp, m), commandSource(m))
	}
	w.Flush()
	return 0
}

func commandLabel(cp *ColorPrinter, m command.Info) string {
	switch m.Kind() {
	case command.Builtin:
		return cp.Sprintf(ColorBoldCyan, "%s", m.Name())
	case command.Alias:
		return cp.Sprintf(ColorBoldGreen, "%s", m.Name())
	default:
		return m.Name()
	}
}

func commandSource(m command.Info) string {
	switch info := m.(type) {
	case *session.Builtin:
		return info.Namespace
	case *command.BuiltinInfo:
		return info.Namespace
	case *command.AliasInfo:
		if info.Module != "" {
			return info.Module
		}
		return "-> " + info.Definition
	case *session.Function:
		return functionSource(info.Info)
	case *command.ApplicationInfo:
		return info.Path
	case *command.ExternalScriptInfo:
		return info.Path
	default:
		return functionSource(m)
	}
}

func functionSource(m command.Info) string {
	switch info := m.(type) {
	case *command.FunctionInfo:
		return info.Module
	case *command.FilterInfo:
		return info.Module
	case *command.ConfigurationInfo:
		return info.Module
	}
	return ""
}

func init() {
	mustAdd(newBuiltin(
		"Get-Command", NamespaceCore,
		"Find the commands a name resolves to, in resolution order.",
		getCommandMetadata(), GetCommand))
}
