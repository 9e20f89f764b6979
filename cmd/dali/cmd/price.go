package cmd

import (
	"fmt"

	"github.com/rustyeddy/dali/historical"
	"github.com/rustyeddy/dali/transaction"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price <timestamp>",
	Short: "Derive a spot price from a candle CSV",
	Long: `Look up the bar that contains a timestamp and print the price the
chosen strategy attributes to it. Timestamps must carry a UTC offset.

Example:
  dali price -b btc_m1.csv -a BTC -s nearest 2024-01-15T10:30:45Z`,
	Args: cobra.ExactArgs(1),
	RunE: runPrice,
}

var (
	priceBarsFile string
	priceAsset    string
	priceStrategy string
)

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVarP(&priceBarsFile, "bars", "b", "", "candle CSV file (required)")
	priceCmd.Flags().StringVarP(&priceAsset, "asset", "a", "", "asset symbol (required)")
	priceCmd.Flags().StringVarP(&priceStrategy, "strategy", "s", string(historical.Nearest), "open, high, low, close or nearest")
	priceCmd.MarkFlagRequired("bars")
	priceCmd.MarkFlagRequired("asset")
}

func runPrice(cmd *cobra.Command, args []string) error {
	ts, err := transaction.ParseTimestamp(args[0])
	if err != nil {
		return err
	}
	strategy, err := historical.ParseStrategy(priceStrategy)
	if err != nil {
		return err
	}

	series, _, err := historical.ReadCSVFile(priceBarsFile, priceAsset)
	if err != nil {
		return fmt.Errorf("read bars: %w", err)
	}
	cat := historical.NewCatalog()
	cat.Add(series)

	bar, err := cat.BarAt(cmd.Context(), priceAsset, ts)
	if err != nil {
		return err
	}

	price, err := historical.DerivePrice(bar, ts, strategy)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n", priceAsset, ts.UTC().Format("2006-01-02T15:04:05Z07:00"), price, bar)
	return nil
}
