package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/core/config"
	"github.com/nutshell-sh/nutshell/core/diag"
)

// initCmd writes an editable copy of the default configuration.
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Initialize the interpreter configuration in a directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		logger := diag.NewLogger(cmd.ErrOrStderr(), "init")
		_, err := config.Initialize(dir, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
