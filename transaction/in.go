package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InParams are the raw fields of value entering a holder's custody.
type InParams struct {
	Common
	Holder          Optional[string]
	Exchange        Optional[string]
	TransactionType string
	SpotPrice       Optional[string]
	CryptoIn        string
	FiatFee         string // empty means zero
}

type InTransaction struct {
	header
	holder    Optional[string]
	exchange  Optional[string]
	txType    Type
	spotPrice Optional[decimal.Decimal]
	cryptoIn  decimal.Decimal
	fiatFee   decimal.Decimal
}

// NewIn validates p and returns the frozen transaction, or a *ValidationError.
func NewIn(p InParams) (*InTransaction, error) {
	c := &checker{kind: KindIn}
	t := &InTransaction{
		header:    c.common(p.Common),
		holder:    c.name("holder", p.Holder),
		exchange:  c.name("exchange", p.Exchange),
		txType:    c.txType(p.TransactionType, inTypes),
		spotPrice: c.spotPrice(p.SpotPrice),
		cryptoIn:  c.amount("crypto_in", p.CryptoIn),
		fiatFee:   decimal.Zero,
	}
	c.positive("crypto_in", t.cryptoIn)
	if p.FiatFee != "" {
		t.fiatFee = c.amount("fiat_fee", p.FiatFee)
		c.nonNegative("fiat_fee", t.fiatFee)
	}
	if c.err != nil {
		return nil, c.err
	}
	return t, nil
}

func (t *InTransaction) Kind() Kind                           { return KindIn }
func (t *InTransaction) Holder() Optional[string]             { return t.holder }
func (t *InTransaction) Exchange() Optional[string]           { return t.exchange }
func (t *InTransaction) TransactionType() Type                { return t.txType }
func (t *InTransaction) SpotPrice() Optional[decimal.Decimal] { return t.spotPrice }
func (t *InTransaction) CryptoIn() decimal.Decimal            { return t.cryptoIn }
func (t *InTransaction) FiatFee() decimal.Decimal             { return t.fiatFee }

// WithSpotPrice returns a copy of t carrying price. t is left untouched.
func (t *InTransaction) WithSpotPrice(price decimal.Decimal) (*InTransaction, error) {
	c := &checker{kind: KindIn}
	c.nonNegative("spot_price", price)
	if c.err != nil {
		return nil, c.err
	}
	cp := *t
	cp.spotPrice = Known(price)
	return &cp, nil
}

func (t *InTransaction) String() string {
	return fmt.Sprintf("In(%s %s %s %s %s holder=%s exchange=%s spot=%s)",
		t.plugin, t.timestamp.Format("2006-01-02T15:04:05Z07:00"), t.txType, t.cryptoIn, t.asset,
		t.holder, t.exchange, t.spotPrice)
}
