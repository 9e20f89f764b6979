package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OutParams are the raw fields of value leaving custody. Either CryptoFee or
// CryptoOutWithFee may be left unknown; the missing one is derived.
type OutParams struct {
	Common
	Holder           Optional[string]
	Exchange         Optional[string]
	TransactionType  string
	SpotPrice        Optional[string]
	CryptoOutNoFee   string
	CryptoFee        Optional[string]
	CryptoOutWithFee Optional[string]
}

type OutTransaction struct {
	header
	holder           Optional[string]
	exchange         Optional[string]
	txType           Type
	spotPrice        Optional[decimal.Decimal]
	cryptoOutNoFee   decimal.Decimal
	cryptoOutWithFee decimal.Decimal
	cryptoFee        decimal.Decimal
}

// NewOut validates p and returns the frozen transaction, or a *ValidationError.
// The invariant crypto_fee = crypto_out_with_fee - crypto_out_no_fee >= 0 always
// holds on a returned value.
func NewOut(p OutParams) (*OutTransaction, error) {
	c := &checker{kind: KindOut}
	t := &OutTransaction{
		header:         c.common(p.Common),
		holder:         c.name("holder", p.Holder),
		exchange:       c.name("exchange", p.Exchange),
		txType:         c.txType(p.TransactionType, outTypes),
		spotPrice:      c.spotPrice(p.SpotPrice),
		cryptoOutNoFee: c.amount("crypto_out_no_fee", p.CryptoOutNoFee),
	}
	c.nonNegative("crypto_out_no_fee", t.cryptoOutNoFee)

	fee := c.optionalAmount("crypto_fee", p.CryptoFee)
	withFee := c.optionalAmount("crypto_out_with_fee", p.CryptoOutWithFee)
	f, hasFee := fee.Get()
	w, hasWithFee := withFee.Get()

	switch {
	case hasWithFee:
		if w.LessThan(t.cryptoOutNoFee) {
			c.fail("crypto_out_with_fee", w.String(), "less than crypto_out_no_fee "+t.cryptoOutNoFee.String())
		}
		t.cryptoOutWithFee = w
		t.cryptoFee = w.Sub(t.cryptoOutNoFee)
		if hasFee && !f.Equal(t.cryptoFee) {
			c.fail("crypto_fee", f.String(), "does not equal crypto_out_with_fee - crypto_out_no_fee")
		}
	case hasFee:
		c.nonNegative("crypto_fee", f)
		t.cryptoFee = f
		t.cryptoOutWithFee = t.cryptoOutNoFee.Add(f)
	default:
		c.fail("crypto_fee", "", "one of crypto_fee or crypto_out_with_fee is required")
	}
	if t.cryptoOutWithFee.IsZero() && c.err == nil {
		c.fail("crypto_out_with_fee", "0", "nothing leaves custody")
	}

	if c.err != nil {
		return nil, c.err
	}
	return t, nil
}

func (t *OutTransaction) Kind() Kind                           { return KindOut }
func (t *OutTransaction) Holder() Optional[string]             { return t.holder }
func (t *OutTransaction) Exchange() Optional[string]           { return t.exchange }
func (t *OutTransaction) TransactionType() Type                { return t.txType }
func (t *OutTransaction) SpotPrice() Optional[decimal.Decimal] { return t.spotPrice }
func (t *OutTransaction) CryptoOutNoFee() decimal.Decimal      { return t.cryptoOutNoFee }
func (t *OutTransaction) CryptoOutWithFee() decimal.Decimal    { return t.cryptoOutWithFee }
func (t *OutTransaction) CryptoFee() decimal.Decimal           { return t.cryptoFee }

// WithSpotPrice returns a copy of t carrying price. t is left untouched.
func (t *OutTransaction) WithSpotPrice(price decimal.Decimal) (*OutTransaction, error) {
	c := &checker{kind: KindOut}
	c.nonNegative("spot_price", price)
	if c.err != nil {
		return nil, c.err
	}
	cp := *t
	cp.spotPrice = Known(price)
	return &cp, nil
}

func (t *OutTransaction) String() string {
	return fmt.Sprintf("Out(%s %s %s %s %s fee=%s holder=%s exchange=%s spot=%s)",
		t.plugin, t.timestamp.Format("2006-01-02T15:04:05Z07:00"), t.txType, t.cryptoOutNoFee, t.asset,
		t.cryptoFee, t.holder, t.exchange, t.spotPrice)
}
