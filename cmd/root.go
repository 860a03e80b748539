package cmd

import (
	"fmt"
	"os"

	"github.com/shamanec/umdb/config"
	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
	"github.com/spf13/cobra"
)

// Version of umdb
const Version = "0.1.0"

var (
	configPath string
	adbCommand string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:     "umdb",
	Short:   "HTTP API over adb for mobile device management",
	Version: Version,
	Long: `umdb lists Android devices reachable through adb, correlates USB and
TCP/IP connections of the same device, connects devices over TCP/IP and opens
deep links on them. iOS devices can be listed through usbmuxd.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.SetupLogging(logLevel, logFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (.json, .yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&adbCommand, "adb", "", "adb executable, overrides the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

// Configuration from the --config file, with --adb taking precedence
func loadConfiguration() (models.Configuration, error) {
	var configuration models.Configuration
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return configuration, fmt.Errorf("load config: %w", err)
		}
		configuration = loaded
	}
	if adbCommand != "" {
		configuration.AdbCommand = adbCommand
	}
	return configuration, nil
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	logger.UmdbLogger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
