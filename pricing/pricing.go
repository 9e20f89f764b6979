// Package pricing fills unknown spot prices from historical bars.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/historical"
	"github.com/rustyeddy/dali/transaction"
	"github.com/shopspring/decimal"
)

// BarSource returns the bar of asset whose interval contains ts.
type BarSource interface {
	BarAt(ctx context.Context, asset string, ts time.Time) (historical.Bar, error)
}

type Resolver struct {
	Source   BarSource
	Strategy historical.Strategy
	// Strict fails the pass on a missing bar instead of leaving the
	// transaction unpriced.
	Strict bool
	Log    zerolog.Logger
}

// Stats summarizes one Resolve pass.
type Stats struct {
	Priced       int
	Missing      int
	AlreadyKnown int
}

// Resolve returns a new slice where every transaction with an unknown spot
// price is replaced by a priced copy. Inputs are never modified.
func (r *Resolver) Resolve(ctx context.Context, txs []transaction.Transaction) ([]transaction.Transaction, Stats, error) {
	var stats Stats
	if _, err := historical.ParseStrategy(string(r.Strategy)); err != nil {
		return nil, stats, err
	}

	out := make([]transaction.Transaction, len(txs))
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		if transaction.IsNil(tx) {
			return nil, stats, fmt.Errorf("price: transaction %d is nil", i)
		}
		out[i] = tx
		if tx.SpotPrice().IsKnown() {
			stats.AlreadyKnown++
			continue
		}

		bar, err := r.Source.BarAt(ctx, tx.Asset(), tx.Timestamp())
		if err != nil {
			if r.Strict || !errors.Is(err, historical.ErrNoBar) {
				return nil, stats, fmt.Errorf("price %s: %w", tx, err)
			}
			stats.Missing++
			r.Log.Warn().Err(err).Stringer("tx", tx).Msg("no bar, leaving spot price unknown")
			continue
		}

		price, err := bar.DerivePrice(tx.Timestamp(), r.Strategy)
		if err != nil {
			return nil, stats, err
		}
		priced, err := withSpotPrice(tx, price)
		if err != nil {
			return nil, stats, fmt.Errorf("price %s: %w", tx, err)
		}
		out[i] = priced
		stats.Priced++
	}
	return out, stats, nil
}

func withSpotPrice(tx transaction.Transaction, price decimal.Decimal) (transaction.Transaction, error) {
	switch t := tx.(type) {
	case *transaction.InTransaction:
		return t.WithSpotPrice(price)
	case *transaction.OutTransaction:
		return t.WithSpotPrice(price)
	case *transaction.IntraTransaction:
		return t.WithSpotPrice(price)
	default:
		return nil, fmt.Errorf("unsupported transaction type %T", tx)
	}
}
