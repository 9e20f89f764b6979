// Package binance loads Binance.com CSV exports: auto-invest purchases and
// ETH to BETH conversions.
//
// Auto-invest columns: timestamp (UTC), base symbol, "<quote amount> <quote
// symbol>", trading fee in quote, "<base amount> <base symbol>", source of funds.
//
// BETH columns: timestamp (UTC), quote symbol (ETH), base symbol (BETH),
// amount, status.
package binance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/plugin"
	"github.com/rustyeddy/dali/transaction"
	"github.com/shopspring/decimal"
)

const (
	Exchange   = "Binance.com"
	PluginName = "Binance.com CSV"
)

const (
	colTimestamp = iota
	colBaseSymbol
	colQuoteAmountSymbol
	colTradingFee
	colBaseAmountSymbol
	colFundSource
)

const (
	colBethQuote  = 1
	colBethBase   = 2
	colBethAmount = 3
	colBethStatus = 4
)

type Config struct {
	AccountHolder  string
	AutoinvestFile string
	BethethFile    string
	NativeFiat     string
	Strict         bool
	Fiat           fiat.Predicate
}

type Loader struct {
	cfg Config
	log zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) (*Loader, error) {
	if strings.TrimSpace(cfg.AccountHolder) == "" {
		return nil, fmt.Errorf("binance: missing account holder")
	}
	if cfg.NativeFiat == "" {
		cfg.NativeFiat = "USD"
	}
	if cfg.Fiat == nil {
		cfg.Fiat = fiat.NewClassifier(cfg.NativeFiat).Predicate()
	}
	l := &Loader{cfg: cfg}
	l.log = log.With().Str("plugin", l.Name()).Logger()
	return l, nil
}

func (l *Loader) Name() string {
	return PluginName + "/" + l.cfg.AccountHolder
}

func (l *Loader) Load(ctx context.Context) ([]transaction.Transaction, error) {
	var result []transaction.Transaction

	if l.cfg.AutoinvestFile != "" {
		txs, err := l.loadFile(ctx, l.cfg.AutoinvestFile, l.ParseAutoinvest)
		if err != nil {
			return nil, err
		}
		result = append(result, txs...)
	}
	if l.cfg.BethethFile != "" {
		txs, err := l.loadFile(ctx, l.cfg.BethethFile, l.ParseBetheth)
		if err != nil {
			return nil, err
		}
		result = append(result, txs...)
	}
	return result, nil
}

type parseFunc func(ctx context.Context, source string, r io.Reader) ([]transaction.Transaction, error)

func (l *Loader) loadFile(ctx context.Context, path string, parse parseFunc) ([]transaction.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("binance: %w", err)
	}
	defer f.Close()
	return parse(ctx, path, f)
}

// ParseAutoinvest turns each auto-invest line into a BUY of the base asset and,
// when the quote asset is crypto, a SELL of the quote asset.
func (l *Loader) ParseAutoinvest(ctx context.Context, source string, r io.Reader) ([]transaction.Transaction, error) {
	c := plugin.NewCollector(source, l.cfg.Strict, l.log)

	err := l.eachLine(ctx, r, c, colFundSource+1, func(line int, raw string, rec []string) error {
		ts := utc(rec[colTimestamp])
		base := rec[colBaseSymbol]
		notes := "Funding from " + rec[colFundSource]

		baseAmount, _, err := amountSymbol(rec[colBaseAmountSymbol])
		if err != nil {
			return c.Fail(line, raw, err)
		}
		quoteAmount, quote, err := amountSymbol(rec[colQuoteAmountSymbol])
		if err != nil {
			return c.Fail(line, raw, err)
		}
		fee := rec[colTradingFee]

		in := transaction.InParams{
			Common:          l.common(raw, ts, base, notes),
			Holder:          transaction.Known(l.cfg.AccountHolder),
			Exchange:        transaction.Known(Exchange),
			TransactionType: string(transaction.TypeBuy),
			SpotPrice:       transaction.Unknown[string](),
			CryptoIn:        baseAmount,
		}

		if l.cfg.Fiat(quote) {
			// fiat legs are not transactions; a native fiat quote prices the buy
			if strings.EqualFold(quote, l.cfg.NativeFiat) {
				if price, ok := unitPrice(quoteAmount, baseAmount); ok {
					in.SpotPrice = transaction.Known(price)
				}
				in.FiatFee = fee
			}
			tx, err := transaction.NewIn(in)
			return c.Add(line, raw, tx, err)
		}

		buy, err := transaction.NewIn(in)
		if err != nil {
			return c.Fail(line, raw, err)
		}
		sell, err := transaction.NewOut(transaction.OutParams{
			Common:          l.common(raw, ts, quote, notes),
			Holder:          transaction.Known(l.cfg.AccountHolder),
			Exchange:        transaction.Known(Exchange),
			TransactionType: string(transaction.TypeSell),
			SpotPrice:       transaction.Unknown[string](),
			CryptoOutNoFee:  quoteAmount,
			CryptoFee:       transaction.Known(fee),
		})
		if err != nil {
			return c.Fail(line, raw, err)
		}
		return c.AddGroup(line, raw, buy, sell)
	})
	if err != nil {
		return nil, err
	}
	l.done(source, c)
	return c.Transactions(), nil
}

// ParseBetheth turns each conversion line into a BUY of the base asset and a
// fee-free SELL of the quote asset. Failed conversions are ignored.
func (l *Loader) ParseBetheth(ctx context.Context, source string, r io.Reader) ([]transaction.Transaction, error) {
	c := plugin.NewCollector(source, l.cfg.Strict, l.log)

	err := l.eachLine(ctx, r, c, colBethAmount+1, func(line int, raw string, rec []string) error {
		if len(rec) > colBethStatus && strings.Contains(strings.ToLower(rec[colBethStatus]), "fail") {
			l.log.Debug().Int("line", line).Msg("ignoring failed conversion")
			return nil
		}
		ts := utc(rec[colTimestamp])
		quote, base, amount := rec[colBethQuote], rec[colBethBase], rec[colBethAmount]
		notes := fmt.Sprintf("Conversion from %s -> %s", quote, base)

		buy, err := transaction.NewIn(transaction.InParams{
			Common:          l.common(raw, ts, base, notes),
			Holder:          transaction.Known(l.cfg.AccountHolder),
			Exchange:        transaction.Known(Exchange),
			TransactionType: string(transaction.TypeBuy),
			SpotPrice:       transaction.Unknown[string](),
			CryptoIn:        amount,
		})
		if err != nil {
			return c.Fail(line, raw, err)
		}
		sell, err := transaction.NewOut(transaction.OutParams{
			Common:           l.common(raw, ts, quote, notes),
			Holder:           transaction.Known(l.cfg.AccountHolder),
			Exchange:         transaction.Known(Exchange),
			TransactionType:  string(transaction.TypeSell),
			SpotPrice:        transaction.Unknown[string](),
			CryptoOutNoFee:   amount,
			CryptoFee:        transaction.Known("0"),
			CryptoOutWithFee: transaction.Known(amount),
		})
		if err != nil {
			return c.Fail(line, raw, err)
		}
		return c.AddGroup(line, raw, buy, sell)
	})
	if err != nil {
		return nil, err
	}
	l.done(source, c)
	return c.Transactions(), nil
}

func (l *Loader) eachLine(ctx context.Context, r io.Reader, c *plugin.Collector, minCols int,
	fn func(line int, raw string, rec []string) error) error {

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("binance: read header: %w", err)
	}
	l.log.Debug().Strs("header", header).Msg("header")

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			if ferr := c.Fail(line, "", err); ferr != nil {
				return ferr
			}
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		raw := strings.Join(rec, ",")
		if len(rec) < minCols {
			if ferr := c.Fail(line, raw, fmt.Errorf("expected %d columns, got %d", minCols, len(rec))); ferr != nil {
				return ferr
			}
			continue
		}
		if err := fn(line, raw, rec); err != nil {
			return err
		}
	}
}

func (l *Loader) common(raw, ts, asset, notes string) transaction.Common {
	return transaction.Common{
		Plugin:    PluginName,
		UniqueID:  transaction.Unknown[string](),
		RawData:   raw,
		Timestamp: ts,
		Asset:     asset,
		Notes:     notes,
	}
}

func (l *Loader) done(source string, c *plugin.Collector) {
	l.log.Info().
		Str("file", source).
		Int("transactions", len(c.Transactions())).
		Int("skipped", c.Skipped()).
		Msg("parsed")
}

// Binance exports are in UTC without an offset.
func utc(ts string) string {
	return ts + " -00:00"
}

// amountSymbol splits "10.5 BUSD" into its amount and symbol.
func amountSymbol(s string) (string, string, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected \"<amount> <symbol>\", got %q", s)
	}
	return parts[0], parts[1], nil
}

func unitPrice(total, qty string) (string, bool) {
	t, err := decimal.NewFromString(total)
	if err != nil {
		return "", false
	}
	q, err := decimal.NewFromString(qty)
	if err != nil || !q.IsPositive() {
		return "", false
	}
	return t.Div(q).String(), true
}
