package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nutshell-sh/nutshell/core/config"
)

var cfgPath string

// loadConfig loads the configuration named by --config. Without the
// flag the embedded default configuration is used.
func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no configuration under %q, did you run init?", cfgPath)
	}
	if err != nil {
		return nil, err
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return configuration, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nutshell",
	Short: "A command interpreter with staged name resolution.",
	Long: `nutshell is a command interpreter in the verb-noun style. Names pass
through alias, function, builtin and filesystem lookup stages, and
commands declare parameters the interpreter binds for them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// exit propagates a nonzero interpreter status as the status of the
// nutshell process itself.
func exit(status int) error {
	if status != 0 {
		os.Exit(status)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration directory (default: built-in configuration)")
}
