package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/builtins"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/shell"
)

var runLine string

// runCmd executes a line or a script file and exits with the status of
// the last call, the way sh -c does.
var runCmd = &cobra.Command{
	Use:   "run [SCRIPT [ARG...]]",
	Short: "Run a command line or script non-interactively.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		switch {
		case runLine == "" && len(args) == 0:
			return errors.New("nothing to run: pass -c LINE or a script path")
		case runLine != "" && len(args) > 0:
			return errors.New("-c and a script path cannot be combined")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sh, err := shell.New(cfg,
			shell.WithBuiltins(builtins.All()...),
			shell.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
			shell.WithLogger(diag.NewLogger(cmd.ErrOrStderr(), "nutshell")),
		)
		if err != nil {
			return err
		}

		if runLine != "" {
			return exit(sh.RunLine(runLine))
		}

		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		return exit(sh.RunScript(args[0], fd, args[1:]))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runLine, "command", "c", "", "command line to run instead of a script file")
}
