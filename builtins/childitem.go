package builtins

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

func getChildItemMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0).
			WithDefault(".").
			WithHelp("location to list, may contain wildcards"),
		command.NewParameter("Name", command.TypeSwitch).
			WithHelp("print names only"),
		command.NewParameter("Force", command.TypeSwitch).
			WithHelp("include hidden items"),
		colorParameter(),
	)
}

// GetChildItem lists the items at a location.
func GetChildItem(inv *session.Invocation) int {
	path := inv.Args.GetString("Path")
	reg := inv.Session.Providers

	var items []provider.Item
	if wildcard.HasMeta(path) {
		matches, err := reg.ResolveGlobbed(inv.Session.Cwd(), path)
		if err != nil {
			fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
			return 1
		}
		for _, rp := range matches {
			d, _ := reg.Drive(rp.Drive)
			item, err := d.Provider.Item(rp.Path)
			if err != nil {
				continue
			}
			items = append(items, item)
		}
	} else {
		rp, item, err := reg.ResolveLiteral(inv.Session.Cwd(), path)
		if err != nil {
			fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
			return 1
		}
		if item.Container {
			d, _ := reg.Drive(rp.Drive)
			children, err := d.Provider.List(rp.Path)
			if err != nil {
				fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
				return 1
			}
			items = children
		} else {
			items = []provider.Item{item}
		}
	}

	if !inv.Args.GetBool("Force") {
		kept := items[:0]
		for _, it := range items {
			if !strings.HasPrefix(it.Name, ".") {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	if inv.Args.GetBool("Name") {
		for _, it := range items {
			fmt.Fprintln(inv.IO.Out, it.Name)
		}
		return 0
	}

	cp := NewColorPrinter(inv.Args)
	w := tabwriter.NewWriter(inv.IO.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Mode\tSize\tName")
	fmt.Fprintln(w, "----\t----\t----")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", itemMode(it), itemSize(it), itemLabel(cp, it))
	}
	w.Flush()
	return 0
}

func itemMode(it provider.Item) string {
	if it.Container {
		return "d----"
	}
	return "-a---"
}

func itemSize(it provider.Item) string {
	if it.Container {
		return ""
	}
	return fmt.Sprintf("%d", it.Size)
}

func itemLabel(cp *ColorPrinter, it provider.Item) string {
	if it.Container {
		return cp.Sprintf(ColorBoldBlue, "%s", it.Name)
	}
	return it.Name
}

func init() {
	mustAdd(newBuiltin(
		"Get-ChildItem", NamespaceManagement,
		"List the items at a location.",
		getChildItemMetadata(), GetChildItem))
}
