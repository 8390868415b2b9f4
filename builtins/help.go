package builtins

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
)

func getHelpMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Name", command.TypeString).At(0).
			WithHelp("builtin to describe"),
		colorParameter(),
	)
}

// GetHelp lists builtins, or describes the parameters of one.
func GetHelp(inv *session.Invocation) int {
	cp := NewColorPrinter(inv.Args)

	name := inv.Args.GetString("Name")
	if name == "" {
		tw := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
		for _, b := range All() {
			fmt.Fprintf(tw, "%s\t%s\n", cp.Sprintf(ColorBoldGreen, "%s", b.BuiltinName), b.Summary)
		}
		tw.Flush()
		return 0
	}

	// Let "Get-Help ls" describe the alias target.
	if a, ok := inv.Session.LookupAlias(name); ok {
		if words := strings.Fields(a.Definition); len(words) > 0 {
			name = words[0]
		}
	}

	var found *session.Builtin
	for _, b := range All() {
		if strings.EqualFold(b.BuiltinName, name) {
			found = b
			break
		}
	}
	if found == nil {
		fmt.Fprintf(inv.IO.Err, "%s: no help for %q\n", inv.Name, name)
		return 1
	}

	fmt.Fprintf(inv.IO.Out, "usage: %s [parameters]\n", cp.Sprintf(ColorBoldGreen, "%s", found.BuiltinName))
	fmt.Fprintln(inv.IO.Out, found.Summary)

	params := found.Params.Parameters()
	if len(params) == 0 {
		return 0
	}
	fmt.Fprintln(inv.IO.Out)
	fmt.Fprintln(inv.IO.Out, "Parameters:")
	tw := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
	for _, p := range params {
		fmt.Fprintf(tw, "  -%s <%s>\t%s\n", p.Name, p.Type, parameterHelp(found.Params, p))
	}
	tw.Flush()
	return 0
}

// parameterHelp renders the declared help text with binding attributes
// appended.
func parameterHelp(meta *command.Metadata, p *command.Parameter) string {
	var attrs []string
	if pos := parameterPosition(p); pos != command.PositionUnset {
		attrs = append(attrs, fmt.Sprintf("position %d", pos))
	}
	if p.MandatoryIn(command.AllSets) {
		attrs = append(attrs, "mandatory")
	}
	if p.TakesRemainingIn(command.AllSets) {
		attrs = append(attrs, "catches remaining arguments")
	}
	if p.HasDefault {
		attrs = append(attrs, fmt.Sprintf("default %q", p.Default))
	}
	if flags := p.Flags(); flags != command.AllSets {
		attrs = append(attrs, "sets: "+meta.DescribeSets(flags))
	}

	if len(attrs) == 0 {
		return p.Help
	}
	if p.Help == "" {
		return "(" + strings.Join(attrs, ", ") + ")"
	}
	return p.Help + " (" + strings.Join(attrs, ", ") + ")"
}

func parameterPosition(p *command.Parameter) int {
	for _, e := range p.Sets {
		if e.Position != command.PositionUnset {
			return e.Position
		}
	}
	return command.PositionUnset
}

func init() {
	mustAdd(newBuiltin(
		"Get-Help", NamespaceCore,
		"Describe available builtins.",
		getHelpMetadata(), GetHelp))
}
