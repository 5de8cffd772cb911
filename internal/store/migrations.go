package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	vendor_id      TEXT NOT NULL DEFAULT '',
	title          TEXT NOT NULL,
	detail         TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	hashtag        TEXT NOT NULL DEFAULT '',
	price          REAL NOT NULL DEFAULT 0,
	discount_price REAL NOT NULL DEFAULT 0,
	images         TEXT NOT NULL DEFAULT '[]',
	order_count    INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL,
	fetched_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'PENDING',
	total      REAL NOT NULL DEFAULT 0,
	items      TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_vendor_id ON products(vendor_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_products_order_count ON products(order_count);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
