package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upEmailCaseInsensitiveUniqueness, downEmailCaseInsensitiveUniqueness)
}

func upEmailCaseInsensitiveUniqueness(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE UNIQUE INDEX users_email_lower_key ON users (lower(email));
	CREATE UNIQUE INDEX stores_email_lower_key ON stores (lower(email));
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downEmailCaseInsensitiveUniqueness(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP INDEX IF EXISTS stores_email_lower_key;
	DROP INDEX IF EXISTS users_email_lower_key;
	`)
	return err
}
