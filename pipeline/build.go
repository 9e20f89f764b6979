package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/config"
	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/historical"
	"github.com/rustyeddy/dali/journal"
	"github.com/rustyeddy/dali/plugin"
	"github.com/rustyeddy/dali/plugin/binance"
	"github.com/rustyeddy/dali/pricing"
)

// BuildLoaders creates one loader per configured source.
func BuildLoaders(cfg *config.Config, isFiat fiat.Predicate, log zerolog.Logger) ([]plugin.Loader, error) {
	loaders := make([]plugin.Loader, 0, len(cfg.Sources))
	for i, s := range cfg.Sources {
		switch s.Type {
		case config.SourceBinanceCSV:
			l, err := binance.New(binance.Config{
				AccountHolder:  s.Holder,
				AutoinvestFile: s.AutoinvestFile,
				BethethFile:    s.BethethFile,
				NativeFiat:     s.NativeFiat,
				Strict:         cfg.Strict,
				Fiat:           isFiat,
			}, log)
			if err != nil {
				return nil, fmt.Errorf("sources[%d]: %w", i, err)
			}
			loaders = append(loaders, l)
		default:
			return nil, fmt.Errorf("sources[%d]: unknown source type %q", i, s.Type)
		}
	}
	return loaders, nil
}

// LoadCatalog reads every configured candle file into a catalog.
func LoadCatalog(bars []config.BarConfig, log zerolog.Logger) (*historical.Catalog, error) {
	cat := historical.NewCatalog()
	for _, b := range bars {
		s, stats, err := historical.ReadCSVFile(b.File, b.Asset)
		if err != nil {
			return nil, fmt.Errorf("bars %s: %w", b.Asset, err)
		}
		granularity, _ := historical.DurationGranularity(s.Duration)
		log.Debug().
			Str("asset", b.Asset).
			Str("granularity", granularity).
			Str("file", b.File).
			Int("bars", stats.Bars).
			Int("incomplete", stats.Incomplete).
			Int("bad_lines", stats.BadLines).
			Int("duplicates", s.Duplicates()).
			Int("gaps", len(s.Gaps())).
			Msg("bars loaded")
		cat.Add(s)
	}
	return cat, nil
}

// OpenJournal opens the configured journal, or returns nil when journaling
// is disabled.
func OpenJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "csv":
		return journal.NewCSV(cfg.File)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
}

// FromConfig assembles Options for cfg. The caller closes Options.Journal
// when it is not nil.
func FromConfig(cfg *config.Config, log zerolog.Logger) (Options, error) {
	isFiat := fiat.NewClassifier(cfg.ExtraFiat...).Predicate()

	loaders, err := BuildLoaders(cfg, isFiat, log)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Loaders: loaders,
		Headers: cfg.Headers,
		Output:  cfg.Output.OutputSpec(),
		Fiat:    isFiat,
		Log:     log,
	}

	if len(cfg.Pricing.Bars) > 0 {
		strategy, err := cfg.Pricing.ParseStrategy()
		if err != nil {
			return Options{}, err
		}
		cat, err := LoadCatalog(cfg.Pricing.Bars, log)
		if err != nil {
			return Options{}, err
		}
		opts.Resolver = &pricing.Resolver{
			Source:   cat,
			Strategy: strategy,
			Strict:   cfg.Strict,
			Log:      log,
		}
	}

	j, err := OpenJournal(cfg.Journal)
	if err != nil {
		return Options{}, err
	}
	opts.Journal = j
	return opts, nil
}
