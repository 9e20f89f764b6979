// Package plugin defines the contract between source loaders and the
// pipeline, and the policy that decides what happens to a bad record.
package plugin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/dali/transaction"
)

// Loader reads one source and returns validated transactions.
type Loader interface {
	Name() string
	Load(ctx context.Context) ([]transaction.Transaction, error)
}

// RecordError ties a construction failure to the source line that caused it.
type RecordError struct {
	Source string
	Line   int
	Raw    string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Collector gathers a loader's output. In lenient mode a failed record is
// logged and skipped; in strict mode the first failure is returned.
type Collector struct {
	source  string
	strict  bool
	log     zerolog.Logger
	txs     []transaction.Transaction
	skipped int
}

func NewCollector(source string, strict bool, log zerolog.Logger) *Collector {
	return &Collector{
		source: source,
		strict: strict,
		log:    log.With().Str("source", source).Logger(),
	}
}

// Add records the outcome of building one transaction from line.
func (c *Collector) Add(line int, raw string, tx transaction.Transaction, err error) error {
	if err != nil {
		rerr := &RecordError{Source: c.source, Line: line, Raw: raw, Err: err}
		if c.strict {
			return rerr
		}
		c.skipped++
		c.log.Warn().Err(err).Int("line", line).Str("raw", raw).Msg("skipping record")
		return nil
	}
	c.log.Debug().Int("line", line).Stringer("tx", tx).Msg("transaction")
	c.txs = append(c.txs, tx)
	return nil
}

// AddGroup records the transactions built from one line. Callers build every
// leg first and report a failure with Fail, so a line is kept whole or not at all.
func (c *Collector) AddGroup(line int, raw string, txs ...transaction.Transaction) error {
	for _, tx := range txs {
		if err := c.Add(line, raw, tx, nil); err != nil {
			return err
		}
	}
	return nil
}

// Fail reports a line that could not even be split into fields.
func (c *Collector) Fail(line int, raw string, err error) error {
	return c.Add(line, raw, nil, err)
}

func (c *Collector) Transactions() []transaction.Transaction { return c.txs }
func (c *Collector) Skipped() int                            { return c.skipped }
