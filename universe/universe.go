// Package universe collects the assets, holders and exchanges observed
// across a batch of normalized transactions.
package universe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/transaction"
)

// ErrInternal matches every *InternalError via errors.Is.
var ErrInternal = errors.New("internal error")

// InternalError reports a value outside the closed set of transaction shapes.
type InternalError struct {
	Index int
	Value transaction.Transaction
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: transaction %d has unsupported type %T", e.Index, e.Value)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// Universe holds the deduplicated participant sets. Unknown values never
// enter a set.
type Universe struct {
	Assets    map[string]struct{}
	Holders   map[string]struct{}
	Exchanges map[string]struct{}
}

func newUniverse() Universe {
	return Universe{
		Assets:    make(map[string]struct{}),
		Holders:   make(map[string]struct{}),
		Exchanges: make(map[string]struct{}),
	}
}

// Aggregate walks txs once. Transactions whose asset isFiat reports as fiat
// are skipped. A nil isFiat treats nothing as fiat.
func Aggregate(txs []transaction.Transaction, isFiat fiat.Predicate) (Universe, error) {
	u := newUniverse()
	for i, tx := range txs {
		holders, exchanges, ok := endpoints(tx)
		if !ok {
			return Universe{}, &InternalError{Index: i, Value: tx}
		}
		if isFiat != nil && isFiat(tx.Asset()) {
			continue
		}
		for _, h := range holders {
			add(u.Holders, h)
		}
		for _, e := range exchanges {
			add(u.Exchanges, e)
		}
		u.Assets[tx.Asset()] = struct{}{}
	}
	return u, nil
}

// endpoints returns the holder and exchange values of tx, or false when tx
// is nil or not one of the three shapes.
func endpoints(tx transaction.Transaction) (holders, exchanges []transaction.Optional[string], ok bool) {
	if transaction.IsNil(tx) {
		return nil, nil, false
	}
	switch t := tx.(type) {
	case *transaction.InTransaction:
		return []transaction.Optional[string]{t.Holder()}, []transaction.Optional[string]{t.Exchange()}, true
	case *transaction.OutTransaction:
		return []transaction.Optional[string]{t.Holder()}, []transaction.Optional[string]{t.Exchange()}, true
	case *transaction.IntraTransaction:
		return []transaction.Optional[string]{t.FromHolder(), t.ToHolder()},
			[]transaction.Optional[string]{t.FromExchange(), t.ToExchange()}, true
	}
	return nil, nil, false
}

func add(set map[string]struct{}, v transaction.Optional[string]) {
	if s, ok := v.Get(); ok {
		set[s] = struct{}{}
	}
}

func (u Universe) AssetList() []string    { return sorted(u.Assets) }
func (u Universe) HolderList() []string   { return sorted(u.Holders) }
func (u Universe) ExchangeList() []string { return sorted(u.Exchanges) }

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
