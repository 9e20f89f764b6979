package cmd

import (
	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/config"
	"github.com/rustyeddy/dali/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dali",
	Short: "Normalize crypto transactions and generate tax configuration",
	Long: `Dali reads exchange exports, normalizes them into in, out and intra
transactions, fills missing spot prices from historical bars and writes the
configuration artifact consumed by the tax calculator.

It provides tools for:
  - Loading Binance.com CSV exports
  - Pricing transactions from candle CSV files
  - Journaling normalized transactions to CSV or SQLite
  - Generating the assets, holders and exchanges configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnv(envFiles...)
	},
}

var (
	envFiles  []string
	logLevel  string
	logPretty bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, ".env files to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human readable log output")
}

// newLogger builds the process logger from the config log section and the
// command line overrides.
func newLogger(cfg config.LogConfig) zerolog.Logger {
	lc := cfg.LoggerConfig()
	if logLevel != "" {
		lc.Level = logLevel
	}
	if logPretty {
		lc.Pretty = true
	}
	l := logger.New(lc)
	logger.SetGlobalLogger(l)
	return l
}
