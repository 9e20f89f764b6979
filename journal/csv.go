// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/dali/transaction"
)

var CSVHeader = []string{
	"record_id", "kind", "plugin", "unique_id", "timestamp", "asset", "transaction_type",
	"from_holder", "from_exchange", "to_holder", "to_exchange",
	"spot_price", "amount", "fee", "notes",
}

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates path, and any missing parent directories, and writes the header.
func NewCSV(path string) (*CSVJournal, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTransaction(tx transaction.Transaction) error {
	r, err := NewRecord(tx)
	if err != nil {
		return err
	}
	if err := j.w.Write(r.row()); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func (r Record) row() []string {
	return []string{
		r.RecordID,
		r.Kind,
		r.Plugin,
		r.UniqueID,
		r.Timestamp.Format(time.RFC3339Nano),
		r.Asset,
		r.TransactionType,
		r.FromHolder,
		r.FromExchange,
		r.ToHolder,
		r.ToExchange,
		r.SpotPrice,
		r.Amount,
		r.Fee,
		r.Notes,
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	return nil
}
