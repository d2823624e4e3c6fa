package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateRatingsTable, downCreateRatingsTable)
}

func upCreateRatingsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS ratings (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			store_id BIGINT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating >= 1 AND rating <= 5),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			-- one rating per user per store, the upsert conflicts on this
			CONSTRAINT ratings_user_store_key UNIQUE (user_id, store_id)
		);

		CREATE INDEX IF NOT EXISTS idx_ratings_store_id ON ratings(store_id);
	`)
	return err
}

func downCreateRatingsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS ratings;`)
	return err
}
