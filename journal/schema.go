// journal/schema.go
package journal

// Quantities are TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	record_id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	plugin TEXT NOT NULL,
	unique_id TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	asset TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	from_holder TEXT NOT NULL,
	from_exchange TEXT NOT NULL,
	to_holder TEXT NOT NULL,
	to_exchange TEXT NOT NULL,
	spot_price TEXT NOT NULL,
	amount TEXT NOT NULL,
	fee TEXT NOT NULL,
	notes TEXT NOT NULL,
	raw_data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
CREATE INDEX IF NOT EXISTS idx_transactions_asset ON transactions(asset);
`
