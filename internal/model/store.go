package model

import "time"

type Store struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	OwnerID   int64     `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AdminStoreItem is a row of the admin store table.
type AdminStoreItem struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Email   string  `db:"email" json:"email"`
	Address string  `db:"address" json:"address"`
	OwnerID int64   `db:"owner_id" json:"ownerId"`
	Rating  float64 `db:"rating" json:"rating"`
}

// StoreWithUserRating is what a normal user sees: the aggregate plus
// their own rating, if any.
type StoreWithUserRating struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Address       string  `db:"address" json:"address"`
	AverageRating float64 `db:"average_rating" json:"averageRating"`
	UserRating    *int    `db:"user_rating" json:"userRating"`
}

type OwnerStoreSummary struct {
	ID            int64   `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Address       string  `db:"address" json:"address"`
	AverageRating float64 `db:"average_rating" json:"averageRating"`
	TotalRatings  int     `db:"total_ratings" json:"totalRatings"`
}

type Stats struct {
	TotalUsers   int `db:"total_users" json:"totalUsers"`
	TotalStores  int `db:"total_stores" json:"totalStores"`
	TotalRatings int `db:"total_ratings" json:"totalRatings"`
}

// ListQuery carries the search/sort options of the listing endpoints.
type ListQuery struct {
	Search string
	Sort   string
	Order  string
}
