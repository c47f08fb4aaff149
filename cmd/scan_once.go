package cmd

import (
	"context"
	"fmt"

	"github.com/procwarden/procwarden/scanner/app"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/spf13/cobra"
)

// scanOnceCmd runs a single cycle and prints what it found
var scanOnceCmd = &cobra.Command{
	Use:   "scan-once",
	Short: "Run a single scan cycle and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var svc domain.Service
		fxApp, err := app.NewServiceApp(cfg, &svc)
		if err != nil {
			return err
		}
		if err := fxApp.Start(ctx); err != nil {
			return err
		}
		defer fxApp.Stop(context.WithoutCancel(ctx))

		report, err := svc.RunCycle(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if report.EnumerationErr != nil {
			return report.EnumerationErr
		}
		fmt.Fprintf(out, "cycle %s: %d processes in %s\n", report.ID, report.Enumerated, report.Duration())
		for _, r := range domain.AllScanResults {
			fmt.Fprintf(out, "  %-28s %d\n", r, report.Counts[r])
		}
		for _, f := range svc.ListFlagged(ctx) {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", f.PID, f.Name, f.Result, f.Path)
		}
		return nil
	},
}
