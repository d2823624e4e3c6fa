package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Store, error)
	ListForAdmin(ctx context.Context, q model.ListQuery) ([]model.AdminStoreItem, error)
	ListForUser(ctx context.Context, userID int64, q model.ListQuery) ([]model.StoreWithUserRating, error)
	ListOwnerSummaries(ctx context.Context, ownerID int64) ([]model.OwnerStoreSummary, error)
}

type postgresStoreRepository struct {
	db *sqlx.DB
}

func NewPostgresStoreRepository(db *sqlx.DB) StoreRepository {
	return &postgresStoreRepository{db: db}
}

var adminStoreListing = listing{
	searchable: []string{"s.name", "s.email", "s.address"},
	sortable: map[string]string{
		"name":    "s.name",
		"email":   "s.email",
		"address": "s.address",
		"rating":  "rating",
	},
	defaultSort: "name",
}

var userStoreListing = listing{
	searchable: []string{"s.name", "s.address"},
	sortable: map[string]string{
		"name":          "s.name",
		"address":       "s.address",
		"averageRating": "average_rating",
	},
	defaultSort: "name",
}

func (r *postgresStoreRepository) Create(ctx context.Context, store *model.Store) (int64, error) {
	query := `
		INSERT INTO stores (name, email, address, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var newID int64
	err := r.db.QueryRowxContext(ctx, query, store.Name, store.Email, store.Address, store.OwnerID).Scan(&newID)
	if err != nil {
		return 0, translateError(err)
	}

	return newID, nil
}

func (r *postgresStoreRepository) FindByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	query := `SELECT id, name, email, address, owner_id, created_at FROM stores WHERE id = $1`
	if err := r.db.GetContext(ctx, &store, query, id); err != nil {
		return nil, translateError(err)
	}

	return &store, nil
}

func (r *postgresStoreRepository) ListForAdmin(ctx context.Context, q model.ListQuery) ([]model.AdminStoreItem, error) {
	ds := dialect.From(goqu.T("stores").As("s")).
		LeftJoin(goqu.T("ratings").As("r"), goqu.On(goqu.I("s.id").Eq(goqu.I("r.store_id")))).
		Select(
			goqu.I("s.id"),
			goqu.I("s.name"),
			goqu.I("s.email"),
			goqu.I("s.address"),
			goqu.I("s.owner_id"),
			goqu.L("COALESCE(AVG(r.rating), 0)::float8").As("rating"),
		).
		GroupBy(goqu.I("s.id"))

	query, args, err := adminStoreListing.apply(ds, q).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build admin store query: %w", err)
	}

	stores := []model.AdminStoreItem{}
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, err
	}

	return stores, nil
}

func (r *postgresStoreRepository) ListForUser(ctx context.Context, userID int64, q model.ListQuery) ([]model.StoreWithUserRating, error) {
	ds := dialect.From(goqu.T("stores").As("s")).
		LeftJoin(goqu.T("ratings").As("r"), goqu.On(goqu.I("s.id").Eq(goqu.I("r.store_id")))).
		Select(
			goqu.I("s.id"),
			goqu.I("s.name"),
			goqu.I("s.address"),
			goqu.L("COALESCE(AVG(r.rating), 0)::float8").As("average_rating"),
			goqu.L("(SELECT ur.rating FROM ratings ur WHERE ur.store_id = s.id AND ur.user_id = ?)", userID).As("user_rating"),
		).
		GroupBy(goqu.I("s.id"))

	query, args, err := userStoreListing.apply(ds, q).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build store query: %w", err)
	}

	stores := []model.StoreWithUserRating{}
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, err
	}

	return stores, nil
}

func (r *postgresStoreRepository) ListOwnerSummaries(ctx context.Context, ownerID int64) ([]model.OwnerStoreSummary, error) {
	query := `
		SELECT s.id, s.name, s.address,
			COALESCE(AVG(r.rating), 0)::float8 AS average_rating,
			COUNT(r.id) AS total_ratings
		FROM stores s
		LEFT JOIN ratings r ON s.id = r.store_id
		WHERE s.owner_id = $1
		GROUP BY s.id
		ORDER BY s.id ASC
	`

	stores := []model.OwnerStoreSummary{}
	err := r.db.SelectContext(ctx, &stores, query, ownerID)
	return stores, err
}
