package transaction

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func common(asset string) Common {
	return Common{
		Plugin:    "Binance.com CSV",
		UniqueID:  Unknown[string](),
		RawData:   "raw,line",
		Timestamp: "2022-03-04 05:06:07 -00:00",
		Asset:     asset,
	}
}

func validIn() InParams {
	return InParams{
		Common:          common("BTC"),
		Holder:          Known("alice"),
		Exchange:        Known("Binance.com"),
		TransactionType: "buy",
		SpotPrice:       Unknown[string](),
		CryptoIn:        "0.00123",
	}
}

func validOut() OutParams {
	return OutParams{
		Common:           common("BUSD"),
		Holder:           Known("alice"),
		Exchange:         Known("Binance.com"),
		TransactionType:  "SELL",
		SpotPrice:        Unknown[string](),
		CryptoOutNoFee:   "10",
		CryptoFee:        Known("0.1"),
		CryptoOutWithFee: Unknown[string](),
	}
}

func TestNewIn(t *testing.T) {
	t.Parallel()

	tx, err := NewIn(validIn())
	require.NoError(t, err)

	assert.Equal(t, KindIn, tx.Kind())
	assert.Equal(t, "BTC", tx.Asset())
	assert.Equal(t, TypeBuy, tx.TransactionType())
	assert.False(t, tx.UniqueID().IsKnown())
	assert.False(t, tx.SpotPrice().IsKnown())
	assert.True(t, decimal.RequireFromString("0.00123").Equal(tx.CryptoIn()))
	assert.True(t, tx.FiatFee().IsZero())
	assert.Equal(t, time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC), tx.Timestamp().UTC())
}

func TestNewInValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(p *InParams)
		field string
	}{
		{"missing plugin", func(p *InParams) { p.Plugin = " " }, "plugin"},
		{"missing asset", func(p *InParams) { p.Asset = "" }, "asset"},
		{"naive timestamp", func(p *InParams) { p.Timestamp = "2022-03-04 05:06:07" }, "timestamp"},
		{"garbage timestamp", func(p *InParams) { p.Timestamp = "yesterday" }, "timestamp"},
		{"bad crypto_in", func(p *InParams) { p.CryptoIn = "1.2.3" }, "crypto_in"},
		{"zero crypto_in", func(p *InParams) { p.CryptoIn = "0" }, "crypto_in"},
		{"negative fiat fee", func(p *InParams) { p.FiatFee = "-1" }, "fiat_fee"},
		{"empty holder", func(p *InParams) { p.Holder = Known("") }, "holder"},
		{"bad type", func(p *InParams) { p.TransactionType = "SELL" }, "transaction_type"},
		{"negative spot", func(p *InParams) { p.SpotPrice = Known("-3") }, "spot_price"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validIn()
			tt.edit(&p)

			tx, err := NewIn(p)
			require.Error(t, err)
			assert.Nil(t, tx)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, KindIn, verr.Kind)
		})
	}
}

func TestNewOutDerivesWithFee(t *testing.T) {
	t.Parallel()

	tx, err := NewOut(validOut())
	require.NoError(t, err)

	assert.Equal(t, "10.1", tx.CryptoOutWithFee().String())
	assert.Equal(t, "0.1", tx.CryptoFee().String())
	assert.Equal(t, "10", tx.CryptoOutNoFee().String())
}

func TestNewOutDerivesFee(t *testing.T) {
	t.Parallel()

	p := validOut()
	p.CryptoFee = Unknown[string]()
	p.CryptoOutWithFee = Known("10.25")

	tx, err := NewOut(p)
	require.NoError(t, err)
	assert.Equal(t, "0.25", tx.CryptoFee().String())
}

func TestNewOutExactDecimalArithmetic(t *testing.T) {
	t.Parallel()

	p := validOut()
	p.CryptoOutNoFee = "0.1"
	p.CryptoFee = Known("0.2")

	tx, err := NewOut(p)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.3").Equal(tx.CryptoOutWithFee()))
}

func TestNewOutWithFeeBelowNoFee(t *testing.T) {
	t.Parallel()

	p := validOut()
	p.CryptoFee = Unknown[string]()
	p.CryptoOutNoFee = "2"
	p.CryptoOutWithFee = Known("1")

	tx, err := NewOut(p)
	require.Error(t, err)
	assert.Nil(t, tx)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "crypto_out_with_fee", verr.Field)
}

func TestNewOutValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(p *OutParams)
		field string
	}{
		{"inconsistent fee", func(p *OutParams) { p.CryptoOutWithFee = Known("11") }, "crypto_fee"},
		{"negative fee", func(p *OutParams) { p.CryptoFee = Known("-0.1") }, "crypto_fee"},
		{"no fee at all", func(p *OutParams) { p.CryptoFee = Unknown[string]() }, "crypto_fee"},
		{"negative no fee", func(p *OutParams) { p.CryptoOutNoFee = "-1" }, "crypto_out_no_fee"},
		{"in type on out", func(p *OutParams) { p.TransactionType = "BUY" }, "transaction_type"},
		{"zero total", func(p *OutParams) { p.CryptoOutNoFee = "0"; p.CryptoFee = Known("0") }, "crypto_out_with_fee"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validOut()
			tt.edit(&p)

			_, err := NewOut(p)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewIntra(t *testing.T) {
	t.Parallel()

	tx, err := NewIntra(IntraParams{
		Common:         common("ETH"),
		FromHolder:     Known("alice"),
		FromExchange:   Known("Coinbase"),
		ToHolder:       Known("alice"),
		ToExchange:     Unknown[string](),
		CryptoSent:     Known("1.5"),
		CryptoReceived: Known("1.49"),
	})
	require.NoError(t, err)

	assert.Equal(t, KindIntra, tx.Kind())
	assert.Equal(t, "1.49", tx.Amount().String())
	fee, ok := tx.Fee().Get()
	require.True(t, ok)
	assert.Equal(t, "0.01", fee.String())
	assert.False(t, tx.ToExchange().IsKnown())
}

func TestNewIntraValidation(t *testing.T) {
	t.Parallel()

	_, err := NewIntra(IntraParams{Common: common("ETH")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewIntra(IntraParams{
		Common:         common("ETH"),
		CryptoSent:     Known("1"),
		CryptoReceived: Known("2"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "crypto_received", verr.Field)

	tx, err := NewIntra(IntraParams{Common: common("ETH"), CryptoSent: Known("3")})
	require.NoError(t, err)
	assert.Equal(t, "3", tx.Amount().String())
	assert.False(t, tx.Fee().IsKnown())
}

func TestWithSpotPriceLeavesOriginal(t *testing.T) {
	t.Parallel()

	orig, err := NewIn(validIn())
	require.NoError(t, err)

	priced, err := orig.WithSpotPrice(decimal.NewFromInt(42000))
	require.NoError(t, err)

	assert.NotSame(t, orig, priced)
	assert.False(t, orig.SpotPrice().IsKnown())
	p, ok := priced.SpotPrice().Get()
	require.True(t, ok)
	assert.Equal(t, "42000", p.String())

	_, err = priced.WithSpotPrice(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInstancesAreDistinctRecords(t *testing.T) {
	t.Parallel()

	a, err := NewIn(validIn())
	require.NoError(t, err)
	b, err := NewIn(validIn())
	require.NoError(t, err)

	var ta, tb Transaction = a, b
	assert.False(t, ta == tb)
	assert.Equal(t, a.UniqueID(), b.UniqueID())
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	good := []string{
		"2022-01-01T10:00:00Z",
		"2022-01-01T10:00:00.123456+02:00",
		"2022-01-01 10:00:00 -00:00",
		"2022-01-01 10:00:00.5 +00:00",
		"2022-01-01 10:00:00+01:00",
		"2022-01-01 10:00:00 -0500",
	}
	for _, s := range good {
		_, err := ParseTimestamp(s)
		assert.NoError(t, err, s)
	}

	bad := []string{"", "2022-01-01 10:00:00", "2022-01-01T10:00:00", "2022-01-01"}
	for _, s := range bad {
		_, err := ParseTimestamp(s)
		assert.Error(t, err, s)
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	assert.False(t, Unknown[string]().IsKnown())
	assert.True(t, Known("").IsKnown())
	assert.False(t, KnownIfSet("").IsKnown())
	assert.Equal(t, "x", KnownIfSet("x").OrElse("y"))
	assert.Equal(t, "y", Unknown[string]().OrElse("y"))
	assert.Equal(t, "<unknown>", Unknown[int]().String())
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil((*InTransaction)(nil)))
	assert.True(t, IsNil((*OutTransaction)(nil)))
	assert.True(t, IsNil((*IntraTransaction)(nil)))
	assert.False(t, IsNil(&InTransaction{}))
}
