// Root command for the rentledger CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rentledger/rentledger/internal/paths"
)

// appVersion is the CLI release version.
const appVersion = "0.1.0"

// Exit codes for failures; success exits zero by falling off main.
const (
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// logger is the process-wide diagnostic logger, configured by
// PersistentPreRunE from config.yaml and the --verbose flag.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:     "rentledger",
	Short:   "Rentledger is a local-first rental property tracker",
	Version: appVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		logger = newLogger(cfg.GetString(cfgKeyLogLevel))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(ownerCmd)
	rootCmd.AddCommand(buildingCmd)
	rootCmd.AddCommand(tenantCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(vendorCmd)
	rootCmd.AddCommand(expenseCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > RENTLEDGER_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > RENTLEDGER_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// newLogger builds the diagnostic logger writing human-readable lines to
// stderr. The --verbose flag forces debug level over config.yaml.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if flagVerbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
