// Package pipeline runs a full dali pass: load every source, price what the
// sources could not, journal the result and write the configuration artifact.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/configgen"
	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/journal"
	"github.com/rustyeddy/dali/plugin"
	"github.com/rustyeddy/dali/pricing"
	"github.com/rustyeddy/dali/transaction"
	"github.com/rustyeddy/dali/universe"
)

type Options struct {
	Loaders []plugin.Loader
	// Resolver is optional; without it spot prices stay as loaded.
	Resolver *pricing.Resolver
	// Journal is optional. Run does not close it.
	Journal journal.Journal
	Headers configgen.Headers
	Output  configgen.Output
	Fiat    fiat.Predicate
	Log     zerolog.Logger
}

// SourceReport is the outcome of one loader.
type SourceReport struct {
	Name         string
	Transactions int
}

type Report struct {
	Sources      []SourceReport
	Transactions int
	Pricing      pricing.Stats
	Journaled    int
	Assets       int
	Holders      int
	Exchanges    int
	ArtifactPath string
}

// Run executes the pipeline. Loaders run concurrently; their output is
// concatenated in loader order so repeated runs are deterministic.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Fiat == nil {
		opts.Fiat = fiat.NewClassifier().Predicate()
	}
	report := &Report{}

	txs, err := load(ctx, opts.Loaders, report)
	if err != nil {
		return nil, err
	}
	report.Transactions = len(txs)
	opts.Log.Info().Int("sources", len(opts.Loaders)).Int("transactions", len(txs)).Msg("sources loaded")

	if opts.Resolver != nil {
		priced, stats, err := opts.Resolver.Resolve(ctx, txs)
		if err != nil {
			return nil, fmt.Errorf("resolve prices: %w", err)
		}
		txs = priced
		report.Pricing = stats
		opts.Log.Info().
			Int("priced", stats.Priced).
			Int("missing", stats.Missing).
			Int("already_known", stats.AlreadyKnown).
			Msg("spot prices resolved")
	}

	if opts.Journal != nil {
		if err := journal.RecordAll(opts.Journal, txs); err != nil {
			return nil, err
		}
		report.Journaled = len(txs)
	}

	u, err := universe.Aggregate(txs, opts.Fiat)
	if err != nil {
		return nil, err
	}
	artifact := configgen.FromUniverse(u, opts.Headers)
	report.Assets = len(artifact.Assets)
	report.Holders = len(artifact.Holders)
	report.Exchanges = len(artifact.Exchanges)

	path, err := configgen.Write(opts.Output, artifact)
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	report.ArtifactPath = path
	opts.Log.Info().
		Str("path", path).
		Int("assets", report.Assets).
		Int("holders", report.Holders).
		Int("exchanges", report.Exchanges).
		Msg("artifact written")

	return report, nil
}

func load(ctx context.Context, loaders []plugin.Loader, report *Report) ([]transaction.Transaction, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	results := make([][]transaction.Transaction, len(loaders))
	for i, l := range loaders {
		wg.Add(1)
		go func(i int, l plugin.Loader) {
			defer wg.Done()
			txs, err := l.Load(ctx)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("load %s: %w", l.Name(), err)
				}
				mu.Unlock()
				cancel()
				return
			}
			results[i] = txs
		}(i, l)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	var all []transaction.Transaction
	for i, txs := range results {
		report.Sources = append(report.Sources, SourceReport{
			Name:         loaders[i].Name(),
			Transactions: len(txs),
		})
		all = append(all, txs...)
	}
	return all, nil
}
