package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

type AuditRepository interface {
	SaveRatingEvent(ctx context.Context, entry *model.RatingAudit) error
}

type postgresAuditRepository struct {
	db *sqlx.DB
}

func NewPostgresAuditRepository(db *sqlx.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

// SaveRatingEvent is idempotent on event_id so redelivered messages are harmless.
func (r *postgresAuditRepository) SaveRatingEvent(ctx context.Context, entry *model.RatingAudit) error {
	query := `
		INSERT INTO rating_audit (event_id, user_id, store_id, rating, outcome, occurred_at)
		VALUES (:event_id, :user_id, :store_id, :rating, :outcome, :occurred_at)
		ON CONFLICT (event_id) DO NOTHING
	`
	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}
