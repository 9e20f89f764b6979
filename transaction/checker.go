package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// checker records the first rule a constructor's input breaks.
type checker struct {
	kind Kind
	err  error
}

func (c *checker) fail(field, value, reason string) {
	if c.err == nil {
		c.err = &ValidationError{Kind: c.kind, Field: field, Value: value, Reason: reason}
	}
}

func (c *checker) required(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		c.fail(field, v, "required")
	}
	return v
}

// name validates an optional identifier: unknown is fine, known-but-empty is not.
func (c *checker) name(field string, v Optional[string]) Optional[string] {
	s, ok := v.Get()
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		c.fail(field, s, "empty value; use Unknown when the source has none")
	}
	return Known(s)
}

func (c *checker) timestamp(v string) time.Time {
	t, err := ParseTimestamp(v)
	if err != nil {
		c.fail("timestamp", v, "must carry an explicit UTC offset")
	}
	return t
}

func (c *checker) amount(field, v string) decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		c.fail(field, v, "required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		c.fail(field, v, "not a decimal quantity")
		return decimal.Zero
	}
	return d
}

func (c *checker) optionalAmount(field string, v Optional[string]) Optional[decimal.Decimal] {
	s, ok := v.Get()
	if !ok {
		return Unknown[decimal.Decimal]()
	}
	return Known(c.amount(field, s))
}

func (c *checker) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		c.fail(field, d.String(), "must not be negative")
	}
}

func (c *checker) positive(field string, d decimal.Decimal) {
	if !d.IsPositive() {
		c.fail(field, d.String(), "must be positive")
	}
}

func (c *checker) spotPrice(v Optional[string]) Optional[decimal.Decimal] {
	p := c.optionalAmount("spot_price", v)
	if d, ok := p.Get(); ok {
		c.nonNegative("spot_price", d)
	}
	return p
}

func (c *checker) txType(v string, allowed map[Type]bool) Type {
	t := Type(strings.ToUpper(strings.TrimSpace(v)))
	if !allowed[t] {
		c.fail("transaction_type", v, "not valid for "+c.kind.String()+" transactions")
	}
	return t
}
