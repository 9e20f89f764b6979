package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/dali/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the transaction journal",
	Long: `Query and display journaled transactions from a SQLite database.

Subcommands:
  get    - Show one record by ID
  asset  - List records of an asset
  day    - List records on a specific day
  counts - Count records by kind

Examples:
  dali journal get 01HZX3K8J5N2Q4R6T8V0W2Y4Z6
  dali journal asset BTC
  dali journal day 2024-01-15`,
}

var journalGetCmd = &cobra.Command{
	Use:   "get <record-id>",
	Short: "Show one journal record",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalGet,
}

var journalAssetCmd = &cobra.Command{
	Use:   "asset <symbol>",
	Short: "List records of an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalAsset,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List records on a specific UTC day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count records by kind",
	Args:  cobra.NoArgs,
	RunE:  runJournalCounts,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalGetCmd)
	journalCmd.AddCommand(journalAssetCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalCountsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./output/journal.db", "path to SQLite journal DB")
}

func runJournalGet(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.Get(args[0])
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRecordOrg(rec))
	return nil
}

func runJournalAsset(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListByAsset(args[0])
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRecordsOrg(recs))
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(time.UTC, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListBetween(start, end)
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRecordsOrg(recs))
	return nil
}

func runJournalCounts(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	counts, err := j.CountByKind()
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %d\n", k, counts[k])
	}
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
