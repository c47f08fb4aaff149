package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configName string
	configDir  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "procwarden",
	Short: "procwarden watches running processes for known malicious executables",
	Long: `procwarden periodically enumerates running processes, hashes the executables whose
names match a suspicious pattern and terminates those whose SHA-256 digest is known bad.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configName, "config-name", config.DefaultConfigName, "configuration file name without the .toml extension")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory searched for the configuration file before ./config")
	rootCmd.AddCommand(runCmd, scanOnceCmd, digestCmd, pidCmd, hashPasswordCmd)
}

func loadConfig() (config.ScannerConfig, error) {
	cfg, err := config.InitScannerConfig(configName, configDir)
	if err != nil {
		return cfg, err
	}
	logger.InitLoggerWithConfig(cfg.Logging)
	return cfg, nil
}
