package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateRatingAuditTable, downCreateRatingAuditTable)
}

func upCreateRatingAuditTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS rating_audit (
			event_id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL,
			store_id BIGINT NOT NULL,
			rating INT NOT NULL,
			outcome TEXT NOT NULL,
			occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
			recorded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_rating_audit_store_id ON rating_audit(store_id);
	`)
	return err
}

func downCreateRatingAuditTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS rating_audit;`)
	return err
}
