package builtins

import (
	"bufio"
	"fmt"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/session"
)

func getContentMetadata() *command.Metadata {
	return command.NewMetadata(
		command.NewParameter("Path", command.TypeString).At(0).Required().
			WithHelp("location of the item to read"),
		command.NewParameter("TotalCount", command.TypeInt).
			WithValidator(positive("TotalCount")).
			WithHelp("read only the first N lines"),
		command.NewParameter("Tail", command.TypeInt).
			WithValidator(positive("Tail")).
			WithHelp("read only the last N lines"),
	)
}

func positive(name string) func(any) error {
	return func(v any) error {
		n, _ := v.(int)
		if n < 1 {
			return fmt.Errorf("-%s must be at least 1", name)
		}
		return nil
	}
}

// GetContent prints the content of an item.
func GetContent(inv *session.Invocation) int {
	if inv.Args.Has("TotalCount") && inv.Args.Has("Tail") {
		fmt.Fprintf(inv.IO.Err, "%s: -TotalCount and -Tail cannot be combined\n", inv.Name)
		return 1
	}

	reg := inv.Session.Providers
	rp, item, err := reg.ResolveLiteral(inv.Session.Cwd(), inv.Args.GetString("Path"))
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
		return 1
	}
	if item.Container {
		fmt.Fprintf(inv.IO.Err, "%s: %s: is a container\n", inv.Name, rp)
		return 1
	}

	drive, _ := reg.Drive(rp.Drive)
	fd, err := provider.OpenFile(drive, rp.Path)
	if err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
		return 1
	}
	defer fd.Close()

	var lines []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(inv.IO.Err, "%s: %v\n", inv.Name, err)
		return 1
	}

	switch {
	case inv.Args.Has("TotalCount"):
		if n := inv.Args.GetInt("TotalCount"); n < len(lines) {
			lines = lines[:n]
		}
	case inv.Args.Has("Tail"):
		if n := inv.Args.GetInt("Tail"); n < len(lines) {
			lines = lines[len(lines)-n:]
		}
	}

	for _, line := range lines {
		fmt.Fprintln(inv.IO.Out, line)
	}
	return 0
}

func init() {
	mustAdd(newBuiltin(
		"Get-Content", NamespaceManagement,
		"Print the content of an item.",
		getContentMetadata(), GetContent))
}
