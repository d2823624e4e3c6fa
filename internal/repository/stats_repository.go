package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

type StatsRepository interface {
	Totals(ctx context.Context) (*model.Stats, error)
}

type postgresStatsRepository struct {
	db *sqlx.DB
}

func NewPostgresStatsRepository(db *sqlx.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) Totals(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM stores) AS total_stores,
			(SELECT COUNT(*) FROM ratings) AS total_ratings
	`

	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	return &stats, nil
}
