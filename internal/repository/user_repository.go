package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, q model.ListQuery) ([]model.UserListItem, error)
	ListStoreOwners(ctx context.Context) ([]model.StoreOwner, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

var userListing = listing{
	searchable: []string{"u.name", "u.email", "u.address", "u.role"},
	sortable: map[string]string{
		"name":    "u.name",
		"email":   "u.email",
		"address": "u.address",
		"role":    "u.role",
		"rating":  "rating",
	},
	defaultSort: "name",
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (int64, error) {
	query := `INSERT INTO users (name, email, address, password_hash, role) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.Address, user.PasswordHash, user.Role).Scan(&newID)

	if err != nil {
		return 0, translateError(err)
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, address, password_hash, role, created_at, updated_at FROM users WHERE lower(email) = lower($1)`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, address, role, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

// List returns every user; store owners carry the mean rating across the
// stores they own, everyone else a NULL rating.
func (r *postgresUserRepository) List(ctx context.Context, q model.ListQuery) ([]model.UserListItem, error) {
	ds := dialect.From(goqu.T("users").As("u")).Select(
		goqu.I("u.id"),
		goqu.I("u.name"),
		goqu.I("u.email"),
		goqu.I("u.address"),
		goqu.I("u.role"),
		goqu.L(`CASE WHEN u.role = 'store_owner' THEN (
			SELECT COALESCE(AVG(r.rating), 0)::float8 FROM ratings r
			JOIN stores s ON r.store_id = s.id
			WHERE s.owner_id = u.id
		) END`).As("rating"),
	)

	query, args, err := userListing.apply(ds, q).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user list query: %w", err)
	}

	users := []model.UserListItem{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *postgresUserRepository) ListStoreOwners(ctx context.Context) ([]model.StoreOwner, error) {
	owners := []model.StoreOwner{}
	query := `SELECT id, name, email FROM users WHERE role = 'store_owner' ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &owners, query)
	return owners, err
}
