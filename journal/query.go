package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const selectRecord = `
	SELECT record_id, kind, plugin, unique_id, timestamp, asset, transaction_type,
	       from_holder, from_exchange, to_holder, to_exchange, spot_price, amount, fee, notes, raw_data
	FROM transactions`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.RecordID,
		&r.Kind,
		&r.Plugin,
		&r.UniqueID,
		&r.Timestamp,
		&r.Asset,
		&r.TransactionType,
		&r.FromHolder,
		&r.FromExchange,
		&r.ToHolder,
		&r.ToExchange,
		&r.SpotPrice,
		&r.Amount,
		&r.Fee,
		&r.Notes,
		&r.RawData,
	)
	return r, err
}

// Get returns a single record by ID.
func (j *SQLite) Get(recordID string) (Record, error) {
	r, err := scanRecord(j.db.QueryRow(selectRecord+` WHERE record_id = ?`, recordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("record %q not found", recordID)
		}
		return Record{}, err
	}
	return r, nil
}

// ListByAsset returns the records of asset in timestamp order.
func (j *SQLite) ListByAsset(asset string) ([]Record, error) {
	return j.list(selectRecord+` WHERE asset = ? ORDER BY timestamp ASC, record_id ASC`, asset)
}

// ListBetween returns records whose timestamp is within [start, end).
func (j *SQLite) ListBetween(start, end time.Time) ([]Record, error) {
	return j.list(selectRecord+` WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp ASC, record_id ASC`,
		start.UTC(), end.UTC())
}

// CountByKind returns how many records of each kind are stored.
func (j *SQLite) CountByKind() (map[string]int, error) {
	rows, err := j.db.Query(`SELECT kind, COUNT(*) FROM transactions GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) list(query string, args ...any) ([]Record, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
