package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

type RatingRepository interface {
	// Upsert writes the user's rating for the store and reports whether a
	// new row was inserted.
	Upsert(ctx context.Context, userID, storeID int64, value int) (*model.Rating, bool, error)
	AverageForStore(ctx context.Context, storeID int64) (float64, error)
	ListRaters(ctx context.Context, storeID int64, q model.ListQuery) ([]model.Rater, error)
}

type postgresRatingRepository struct {
	db *sqlx.DB
}

func NewPostgresRatingRepository(db *sqlx.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

var raterListing = listing{
	searchable: []string{"u.name", "u.email"},
	sortable: map[string]string{
		"name":    "u.name",
		"email":   "u.email",
		"rating":  "r.rating",
		"ratedAt": "r.created_at",
	},
	defaultSort: "ratedAt",
	defaultDesc: true,
}

const upsertRatingQuery = `
	INSERT INTO ratings (user_id, store_id, rating)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, store_id)
	DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
	RETURNING id, user_id, store_id, rating, created_at, updated_at, (xmax = 0) AS inserted
`

type upsertedRating struct {
	model.Rating
	Inserted bool `db:"inserted"`
}

func (r *postgresRatingRepository) Upsert(ctx context.Context, userID, storeID int64, value int) (*model.Rating, bool, error) {
	var row upsertedRating
	if err := r.db.GetContext(ctx, &row, upsertRatingQuery, userID, storeID, value); err != nil {
		return nil, false, translateError(err)
	}

	return &row.Rating, row.Inserted, nil
}

func (r *postgresRatingRepository) AverageForStore(ctx context.Context, storeID int64) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0)::float8 FROM ratings WHERE store_id = $1`
	err := r.db.GetContext(ctx, &avg, query, storeID)
	return avg, err
}

func (r *postgresRatingRepository) ListRaters(ctx context.Context, storeID int64, q model.ListQuery) ([]model.Rater, error) {
	ds := dialect.From(goqu.T("ratings").As("r")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("r.user_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("u.id"),
			goqu.I("u.name"),
			goqu.I("u.email"),
			goqu.I("r.rating"),
			goqu.I("r.created_at").As("rated_at"),
			goqu.I("r.updated_at"),
		).
		Where(goqu.I("r.store_id").Eq(storeID))

	query, args, err := raterListing.apply(ds, q).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build raters query: %w", err)
	}

	raters := []model.Rater{}
	if err := r.db.SelectContext(ctx, &raters, query, args...); err != nil {
		return nil, err
	}

	return raters, nil
}
