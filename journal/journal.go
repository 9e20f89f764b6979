// journal/journal.go
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/dali/pkg/id"
	"github.com/rustyeddy/dali/transaction"
)

// Record is the flattened, persisted view of one transaction. Unknown values
// are stored as empty strings. RecordID is assigned at record time because
// a source's unique_id may repeat.
type Record struct {
	RecordID        string
	Kind            string
	Plugin          string
	UniqueID        string
	Timestamp       time.Time
	Asset           string
	TransactionType string
	FromHolder      string
	FromExchange    string
	ToHolder        string
	ToExchange      string
	SpotPrice       string
	Amount          string
	Fee             string
	Notes           string
	RawData         string
}

type Journal interface {
	RecordTransaction(transaction.Transaction) error
	Close() error
}

// TransferType is the transaction_type written for intra transactions.
const TransferType = "MOVE"

// NewRecord flattens tx. Value entering custody lands in the To columns and
// value leaving custody in the From columns.
func NewRecord(tx transaction.Transaction) (Record, error) {
	r := Record{
		RecordID:  id.New(),
		Kind:      tx.Kind().String(),
		Plugin:    tx.Plugin(),
		UniqueID:  tx.UniqueID().OrElse(""),
		Timestamp: tx.Timestamp().UTC(),
		Asset:     tx.Asset(),
		SpotPrice: stringOrEmpty(tx.SpotPrice()),
		Notes:     tx.Notes(),
		RawData:   tx.RawData(),
	}

	switch t := tx.(type) {
	case *transaction.InTransaction:
		r.TransactionType = string(t.TransactionType())
		r.ToHolder = t.Holder().OrElse("")
		r.ToExchange = t.Exchange().OrElse("")
		r.Amount = t.CryptoIn().String()
		r.Fee = t.FiatFee().String()
	case *transaction.OutTransaction:
		r.TransactionType = string(t.TransactionType())
		r.FromHolder = t.Holder().OrElse("")
		r.FromExchange = t.Exchange().OrElse("")
		r.Amount = t.CryptoOutNoFee().String()
		r.Fee = t.CryptoFee().String()
	case *transaction.IntraTransaction:
		r.TransactionType = TransferType
		r.FromHolder = t.FromHolder().OrElse("")
		r.FromExchange = t.FromExchange().OrElse("")
		r.ToHolder = t.ToHolder().OrElse("")
		r.ToExchange = t.ToExchange().OrElse("")
		r.Amount = t.Amount().String()
		r.Fee = stringOrEmpty(t.Fee())
	default:
		return Record{}, fmt.Errorf("journal: unsupported transaction type %T", tx)
	}
	return r, nil
}

// RecordAll writes txs in order and stops at the first error.
func RecordAll(j Journal, txs []transaction.Transaction) error {
	for _, tx := range txs {
		if err := j.RecordTransaction(tx); err != nil {
			return fmt.Errorf("journal %s: %w", tx, err)
		}
	}
	return nil
}

func stringOrEmpty[T fmt.Stringer](o transaction.Optional[T]) string {
	v, ok := o.Get()
	if !ok {
		return ""
	}
	return v.String()
}
