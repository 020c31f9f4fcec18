package postgres

// Schema is the DDL applied by `seed init`. The partial unique index
// enforces the one-open-request-per-item invariant at the schema level,
// backing up the transactional check in Create.
const Schema = `
CREATE TABLE IF NOT EXISTS items (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT '',
	current_stock INTEGER NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
	daily_usage DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (daily_usage >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS restock_requests (
	id UUID PRIMARY KEY,
	item_id BIGINT NOT NULL REFERENCES items(id),
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	priority TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	comments TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS restock_requests_open_item_idx
	ON restock_requests (item_id)
	WHERE status IN ('pending', 'approved');

CREATE INDEX IF NOT EXISTS restock_requests_requested_at_idx
	ON restock_requests (requested_at);
`
