// Package transaction defines the canonical shapes that every source loader
// produces: InTransaction, OutTransaction and IntraTransaction.
//
// Instances are validated once by their constructor and are read-only
// afterwards. Values a source cannot supply are carried as Optional and never
// as a magic string. Two instances are distinct records even when every
// field matches, so callers must not deduplicate on UniqueID.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is implemented only by *InTransaction, *OutTransaction and
// *IntraTransaction.
type Transaction interface {
	Kind() Kind
	Plugin() string
	UniqueID() Optional[string]
	RawData() string
	Timestamp() time.Time
	Asset() string
	Notes() string
	SpotPrice() Optional[decimal.Decimal]
	String() string

	sealed()
}

// IsNil reports whether tx is a nil interface or a nil pointer of one of the
// three shapes.
func IsNil(tx Transaction) bool {
	switch t := tx.(type) {
	case nil:
		return true
	case *InTransaction:
		return t == nil
	case *OutTransaction:
		return t == nil
	case *IntraTransaction:
		return t == nil
	}
	return false
}

// Common holds the raw fields shared by every shape, as a loader reads them.
type Common struct {
	Plugin    string
	UniqueID  Optional[string]
	RawData   string
	Timestamp string
	Asset     string
	Notes     string
}

type header struct {
	plugin    string
	uniqueID  Optional[string]
	rawData   string
	timestamp time.Time
	asset     string
	notes     string
}

func (h *header) Plugin() string             { return h.plugin }
func (h *header) UniqueID() Optional[string] { return h.uniqueID }
func (h *header) RawData() string            { return h.rawData }
func (h *header) Timestamp() time.Time       { return h.timestamp }
func (h *header) Asset() string              { return h.asset }
func (h *header) Notes() string              { return h.notes }
func (h *header) sealed()                    {}

func (c *checker) common(p Common) header {
	return header{
		plugin:    c.required("plugin", p.Plugin),
		uniqueID:  c.name("unique_id", p.UniqueID),
		rawData:   p.RawData,
		timestamp: c.timestamp(p.Timestamp),
		asset:     c.required("asset", p.Asset),
		notes:     p.Notes,
	}
}
