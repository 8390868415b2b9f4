package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/builtins"
	"github.com/nutshell-sh/nutshell/core/resolve"
	"github.com/nutshell-sh/nutshell/core/shell"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

var (
	resolveAll      bool
	resolveRunspace bool
)

// resolveCmd shows the lookup a name goes through without running
// anything.
var resolveCmd = &cobra.Command{
	Use:   "resolve NAME",
	Short: "Show which commands a name resolves to, stage by stage.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sh, err := shell.New(cfg, shell.WithBuiltins(builtins.All()...))
		if err != nil {
			return err
		}

		name := args[0]
		req := resolve.Request{
			Name:    name,
			Options: sh.SearchOptions(),
		}
		if wildcard.HasMeta(name) {
			req.Options |= resolve.NameIsPattern | resolve.ResolveAliasPatterns | resolve.ResolveFunctionPatterns
		}
		if resolveRunspace {
			req.Origin = resolve.OriginRunspace
		}

		search := resolve.New(sh.Session).Search(req)
		defer search.Close()

		type row struct {
			stage, kind, name string
		}
		var rows []row
		for search.Next() {
			m := search.Command()
			rows = append(rows, row{search.State().String(), m.Kind().String(), m.Name()})
			if !resolveAll {
				break
			}
		}
		if err := search.Err(); err != nil {
			return err
		}

		if len(rows) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no command found named %q, search ended at %s\n", name, search.State())
			return exit(127)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "Stage\tKind\tName")
		fmt.Fprintln(w, "-----\t----\t----")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.stage, r.kind, r.name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVarP(&resolveAll, "all", "a", false, "keep searching after the first match")
	resolveCmd.Flags().BoolVar(&resolveRunspace, "runspace", false, "resolve as a runspace request, honoring the path allow list")
}
