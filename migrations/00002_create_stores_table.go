package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStoresTable, downCreateStoresTable)
}

func upCreateStoresTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE stores (
	  id BIGSERIAL PRIMARY KEY,
	  name VARCHAR(60) NOT NULL,
	  email TEXT UNIQUE NOT NULL,
	  address VARCHAR(400) NOT NULL DEFAULT '',
	  owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX idx_stores_owner_id ON stores(owner_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateStoresTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS stores;`)
	return err
}
