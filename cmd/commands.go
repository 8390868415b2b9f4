package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/builtins"
)

// commandsCmd lists the hosted commands compiled into the interpreter.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the builtin commands the interpreter hosts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, b := range builtins.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name(), b.Namespace, b.Summary)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
