package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "transactions", name)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	txs := testTransactions(t)
	want, err := NewRecord(txs[0])
	require.NoError(t, err)
	require.NoError(t, j.insert(want))

	got, err := j.Get(want.RecordID)
	require.NoError(t, err)

	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Asset, got.Asset)
	assert.Equal(t, want.SpotPrice, got.SpotPrice)
	assert.Equal(t, want.Amount, got.Amount)
	assert.Equal(t, want.RawData, got.RawData)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))

	_, err = j.Get("nonexistent")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteQueries(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, RecordAll(j, testTransactions(t)))

	btc, err := j.ListByAsset("BTC")
	require.NoError(t, err)
	require.Len(t, btc, 2)
	assert.Equal(t, "in", btc[0].Kind)
	assert.Equal(t, "intra", btc[1].Kind)

	start := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	between, err := j.ListBetween(start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "ETH", between[0].Asset)

	counts, err := j.CountByKind()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"in": 1, "out": 1, "intra": 1}, counts)
}

func TestNewSQLiteCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output", "journal.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())
	assert.FileExists(t, path)
}
