package cmd

import (
	"fmt"

	"github.com/rustyeddy/dali/config"
	"github.com/rustyeddy/dali/pipeline"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load sources and generate the configuration artifact",
	Long: `Run the full pipeline described by a configuration file: load every
source, resolve unknown spot prices from the configured bars, journal the
normalized transactions and write the configuration artifact.

Example:
  dali run -f dali.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.Log)

	opts, err := pipeline.FromConfig(cfg, log)
	if err != nil {
		return err
	}
	if opts.Journal != nil {
		defer opts.Journal.Close()
	}

	report, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range report.Sources {
		fmt.Fprintf(out, "  %-32s %d transactions\n", s.Name, s.Transactions)
	}
	fmt.Fprintf(out, "  Priced: %d  Missing bars: %d  Already known: %d\n",
		report.Pricing.Priced, report.Pricing.Missing, report.Pricing.AlreadyKnown)
	if report.Journaled > 0 {
		fmt.Fprintf(out, "  Journaled: %d\n", report.Journaled)
	}
	fmt.Fprintf(out, "  Assets: %d  Holders: %d  Exchanges: %d\n", report.Assets, report.Holders, report.Exchanges)
	fmt.Fprintf(out, "✓ Wrote %s\n", report.ArtifactPath)
	return nil
}
