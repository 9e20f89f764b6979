package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IntraParams are the raw fields of a move between two custody points.
// At least one of CryptoSent and CryptoReceived must be known.
type IntraParams struct {
	Common
	FromHolder     Optional[string]
	FromExchange   Optional[string]
	ToHolder       Optional[string]
	ToExchange     Optional[string]
	SpotPrice      Optional[string]
	CryptoSent     Optional[string]
	CryptoReceived Optional[string]
}

type IntraTransaction struct {
	header
	fromHolder     Optional[string]
	fromExchange   Optional[string]
	toHolder       Optional[string]
	toExchange     Optional[string]
	spotPrice      Optional[decimal.Decimal]
	cryptoSent     Optional[decimal.Decimal]
	cryptoReceived Optional[decimal.Decimal]
}

// NewIntra validates p and returns the frozen transaction, or a *ValidationError.
func NewIntra(p IntraParams) (*IntraTransaction, error) {
	c := &checker{kind: KindIntra}
	t := &IntraTransaction{
		header:         c.common(p.Common),
		fromHolder:     c.name("from_holder", p.FromHolder),
		fromExchange:   c.name("from_exchange", p.FromExchange),
		toHolder:       c.name("to_holder", p.ToHolder),
		toExchange:     c.name("to_exchange", p.ToExchange),
		spotPrice:      c.spotPrice(p.SpotPrice),
		cryptoSent:     c.optionalAmount("crypto_sent", p.CryptoSent),
		cryptoReceived: c.optionalAmount("crypto_received", p.CryptoReceived),
	}

	sent, hasSent := t.cryptoSent.Get()
	received, hasReceived := t.cryptoReceived.Get()
	if hasSent {
		c.nonNegative("crypto_sent", sent)
	}
	if hasReceived {
		c.nonNegative("crypto_received", received)
	}
	switch {
	case !hasSent && !hasReceived:
		c.fail("crypto_sent", "", "one of crypto_sent or crypto_received is required")
	case hasSent && hasReceived && sent.LessThan(received):
		c.fail("crypto_received", received.String(), "greater than crypto_sent "+sent.String())
	}

	if c.err != nil {
		return nil, c.err
	}
	return t, nil
}

func (t *IntraTransaction) Kind() Kind                                { return KindIntra }
func (t *IntraTransaction) FromHolder() Optional[string]              { return t.fromHolder }
func (t *IntraTransaction) FromExchange() Optional[string]            { return t.fromExchange }
func (t *IntraTransaction) ToHolder() Optional[string]                { return t.toHolder }
func (t *IntraTransaction) ToExchange() Optional[string]              { return t.toExchange }
func (t *IntraTransaction) SpotPrice() Optional[decimal.Decimal]      { return t.spotPrice }
func (t *IntraTransaction) CryptoSent() Optional[decimal.Decimal]     { return t.cryptoSent }
func (t *IntraTransaction) CryptoReceived() Optional[decimal.Decimal] { return t.cryptoReceived }

// Amount is the transferred quantity: received when known, else sent.
func (t *IntraTransaction) Amount() decimal.Decimal {
	if r, ok := t.cryptoReceived.Get(); ok {
		return r
	}
	s, _ := t.cryptoSent.Get()
	return s
}

// Fee is sent minus received, known only when both sides are.
func (t *IntraTransaction) Fee() Optional[decimal.Decimal] {
	s, okS := t.cryptoSent.Get()
	r, okR := t.cryptoReceived.Get()
	if !okS || !okR {
		return Unknown[decimal.Decimal]()
	}
	return Known(s.Sub(r))
}

// WithSpotPrice returns a copy of t carrying price. t is left untouched.
func (t *IntraTransaction) WithSpotPrice(price decimal.Decimal) (*IntraTransaction, error) {
	c := &checker{kind: KindIntra}
	c.nonNegative("spot_price", price)
	if c.err != nil {
		return nil, c.err
	}
	cp := *t
	cp.spotPrice = Known(price)
	return &cp, nil
}

func (t *IntraTransaction) String() string {
	return fmt.Sprintf("Intra(%s %s %s %s from=%s/%s to=%s/%s)",
		t.plugin, t.timestamp.Format("2006-01-02T15:04:05Z07:00"), t.Amount(), t.asset,
		t.fromHolder, t.fromExchange, t.toHolder, t.toExchange)
}
