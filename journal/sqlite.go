package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/dali/transaction"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(tx transaction.Transaction) error {
	r, err := NewRecord(tx)
	if err != nil {
		return err
	}
	return j.insert(r)
}

func (j *SQLite) insert(r Record) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(record_id, kind, plugin, unique_id, timestamp, asset, transaction_type,
		 from_holder, from_exchange, to_holder, to_exchange, spot_price, amount, fee, notes, raw_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RecordID, r.Kind, r.Plugin, r.UniqueID, r.Timestamp, r.Asset, r.TransactionType,
		r.FromHolder, r.FromExchange, r.ToHolder, r.ToExchange, r.SpotPrice, r.Amount, r.Fee, r.Notes, r.RawData,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
