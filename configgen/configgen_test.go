package configgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/dali/fiat"
	"github.com/rustyeddy/dali/transaction"
	"github.com/rustyeddy/dali/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIn(t *testing.T, asset, holder, exchange string) transaction.Transaction {
	t.Helper()
	tx, err := transaction.NewIn(transaction.InParams{
		Common: transaction.Common{
			Plugin:    "test",
			Timestamp: "2023-01-01T00:00:00Z",
			Asset:     asset,
		},
		Holder:          transaction.KnownIfSet(holder),
		Exchange:        transaction.KnownIfSet(exchange),
		TransactionType: "BUY",
		CryptoIn:        "2",
	})
	require.NoError(t, err)
	return tx
}

func testHeaders() Headers {
	return Headers{
		In:    map[string]any{"timestamp": 0, "asset": 1},
		Out:   map[string]any{"timestamp": 0},
		Intra: nil,
	}
}

func TestGenerateJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txs := []transaction.Transaction{
		newIn(t, "BTC", "alice", "Kraken"),
		newIn(t, "ETH", "", "Coinbase"),
		newIn(t, "EUR", "bank-holder", "Bank"),
	}

	out := Output{Dir: dir, Prefix: "test_", Name: "config.json"}
	path, err := Generate(out, txs, testHeaders(), fiat.NewClassifier().Predicate())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_config.json"), path)

	a, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, a.Assets)
	assert.Equal(t, []string{"alice"}, a.Holders)
	assert.Equal(t, []string{"Coinbase", "Kraken"}, a.Exchanges)
	assert.Equal(t, float64(1), a.InHeader["asset"])
	assert.NotNil(t, a.IntraHeader)
	assert.Empty(t, a.IntraHeader)
}

func TestGenerateOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := Output{Dir: dir, Name: "crypto.yaml"}
	require.NoError(t, os.WriteFile(out.Path(), []byte("stale: true\nassets: [DOGE]\n"), 0o644))

	_, err := Generate(out, []transaction.Transaction{newIn(t, "ADA", "bob", "Binance.com")}, testHeaders(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.NotContains(t, string(data), "DOGE")

	a, err := LoadFromFile(out.Path())
	require.NoError(t, err)
	assert.Equal(t, []string{"ADA"}, a.Assets)
	assert.Equal(t, []string{"bob"}, a.Holders)
}

func TestGenerateMissingName(t *testing.T) {
	t.Parallel()

	_, err := Generate(Output{Dir: t.TempDir()}, nil, Headers{}, nil)
	assert.Error(t, err)
}

func TestGenerateCreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := Generate(Output{Dir: dir, Name: "c.json"}, nil, Headers{}, nil)
	require.NoError(t, err)

	a, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, a.Assets)
}

func TestWriteFromUniverse(t *testing.T) {
	t.Parallel()

	txs := []transaction.Transaction{
		newIn(t, "BTC", "alice", "Kraken"),
		newIn(t, "USD", "carol", "Bank"),
	}
	isFiat := fiat.NewClassifier().Predicate()

	u, err := universe.Aggregate(txs, isFiat)
	require.NoError(t, err)
	a := FromUniverse(u, testHeaders())

	built, err := Build(txs, testHeaders(), isFiat)
	require.NoError(t, err)
	assert.Equal(t, built, a)

	path, err := Write(Output{Dir: t.TempDir(), Name: "c.yaml"}, a)
	require.NoError(t, err)
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC"}, loaded.Assets)
	assert.Equal(t, []string{"alice"}, loaded.Holders)

	_, err = Write(Output{Dir: t.TempDir()}, a)
	assert.Error(t, err)
}
