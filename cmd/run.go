package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nightlyone/lockfile"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/app"
	"github.com/spf13/cobra"
)

// runCmd starts the scanner service
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scan loop and the REST control server until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		pidFile, err := filepath.Abs(cfg.Scanner.PIDFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(pidFile), 0o700); err != nil {
			return fmt.Errorf("pid file directory: %w", err)
		}
		lock, err := lockfile.New(pidFile)
		if err != nil {
			return fmt.Errorf("pid file %s: %w", pidFile, err)
		}
		if err := lock.TryLock(); err != nil {
			if errors.Is(err, lockfile.ErrBusy) {
				if owner, ownerErr := lock.GetOwner(); ownerErr == nil {
					return fmt.Errorf("procwarden is already running as pid %d", owner.Pid)
				}
			}
			return fmt.Errorf("lock %s: %w", pidFile, err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Logger(ctx).Warn().Err(err).Msgf("release pid file %s", pidFile)
			}
		}()

		fxApp, err := app.NewRestApp(cfg)
		if err != nil {
			return err
		}
		startCtx, cancel := context.WithTimeout(ctx, fxApp.StartTimeout())
		defer cancel()
		if err := fxApp.Start(startCtx); err != nil {
			return err
		}

		sig := <-fxApp.Wait()
		logger.Logger(ctx).Info().Msgf("received %s, shutting down", sig.Signal)

		stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), fxApp.StopTimeout())
		defer stopCancel()
		return fxApp.Stop(stopCtx)
	},
}
