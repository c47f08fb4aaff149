package cmd

import (
	"fmt"

	"github.com/procwarden/procwarden/scanner/app"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/spf13/cobra"
)

var backend string

// pidCmd looks up process ids by exact executable name
var pidCmd = &cobra.Command{
	Use:   "pid <name>",
	Short: "Print the ids of processes whose executable name equals <name>, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if backend != "" {
			cfg.Scanner.Backend = backend
		}
		src, err := app.NewProcessSource(cfg.Scanner)
		if err != nil {
			return err
		}
		descriptors, err := src.Enumerate(cmd.Context())
		if err != nil {
			return err
		}
		pids := domain.FindProcessIDs(descriptors, args[0])
		if len(pids) == 0 {
			return fmt.Errorf("no process named %q", args[0])
		}
		for _, pid := range pids {
			fmt.Fprintln(cmd.OutOrStdout(), pid)
		}
		return nil
	},
}

func init() {
	pidCmd.Flags().StringVar(&backend, "backend", "", "override scanner.backend (procfs or gopsutil)")
}
