package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/builtins"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/shell"
)

var replAuditLog bool

// replCmd runs the interpreter against the local terminal.
var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"shell"},
	Short:   "Run the interpreter interactively.",
	Args:    cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := []shell.Option{
			shell.WithBuiltins(builtins.All()...),
			shell.WithIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
			shell.WithLogger(diag.NewLogger(cmd.ErrOrStderr(), "nutshell")),
		}

		if replAuditLog {
			if cfg.Dir() == "" {
				return errors.New("--audit-log needs somewhere to write, pass --config")
			}
			fd, err := cfg.OpenAuditLog()
			if err != nil {
				return err
			}
			defer fd.Close()
			opts = append(opts, shell.WithRecorder(diag.NewJSONLines(fd)))
		}

		sh, err := shell.New(cfg, opts...)
		if err != nil {
			return err
		}

		status, err := sh.RunInteractive()
		if err != nil {
			return err
		}
		return exit(status)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replAuditLog, "audit-log", false, "append suppression and denied-lookup events to the audit log")
}
