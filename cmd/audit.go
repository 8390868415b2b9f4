package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/nutshell-sh/nutshell/core/diag"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Explore the interpreter audit trail.",
}

var auditReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the recorded audit events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fd, err := cfg.ReadAuditLog()
		if errors.Is(err, fs.ErrNotExist) {
			return errors.New("no audit log recorded yet")
		}
		if err != nil {
			return err
		}
		defer fd.Close()

		var report diag.Report
		if err := diag.ReadLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditReportCmd)
}
