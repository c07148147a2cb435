package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the XPay store.
var Migrations = migrate.NewGroup("xpay")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_xpay_items",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_items (
    item_id    TEXT PRIMARY KEY,
    content    BYTEA,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_items`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_xpay_item_owners",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_item_owners (
    item_id TEXT PRIMARY KEY,
    owner   TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_xpay_owners_owner ON xpay_item_owners (owner);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_item_owners`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_xpay_item_quantities",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_item_quantities (
    item_id  TEXT PRIMARY KEY,
    quantity BIGINT NOT NULL DEFAULT 0
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_item_quantities`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_xpay_item_prices",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_item_prices (
    item_id  TEXT PRIMARY KEY,
    asset_id BIGINT NOT NULL DEFAULT 0,
    amount   TEXT NOT NULL DEFAULT '0'
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_item_prices`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_xpay_counters",
			Version: "20240101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_counters (
    name  TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT '0'
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_counters`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_xpay_receipts",
			Version: "20240101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS xpay_receipts (
    id            TEXT PRIMARY KEY,
    item_id       TEXT NOT NULL DEFAULT '',
    buyer         TEXT NOT NULL DEFAULT '',
    seller        TEXT NOT NULL DEFAULT '',
    quantity      BIGINT NOT NULL DEFAULT 0,
    settlement    TEXT NOT NULL DEFAULT '',
    priced_asset  BIGINT NOT NULL DEFAULT 0,
    priced_amount TEXT NOT NULL DEFAULT '0',
    total         TEXT NOT NULL DEFAULT '0',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_xpay_receipts_item ON xpay_receipts (item_id, created_at);
CREATE INDEX IF NOT EXISTS idx_xpay_receipts_buyer ON xpay_receipts (buyer, created_at);
CREATE INDEX IF NOT EXISTS idx_xpay_receipts_seller ON xpay_receipts (seller, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS xpay_receipts`)
				return err
			},
		},
	)
}
