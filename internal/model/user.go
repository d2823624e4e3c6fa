package model

import "time"

const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RoleUser       = "user"
)

type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Address      string    `db:"address"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Identity is the caller resolved by the auth middleware.
type Identity struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  string `db:"role" json:"role"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type UserListItem struct {
	ID      int64    `db:"id" json:"id"`
	Name    string   `db:"name" json:"name"`
	Email   string   `db:"email" json:"email"`
	Address string   `db:"address" json:"address"`
	Role    string   `db:"role" json:"role"`
	Rating  *float64 `db:"rating" json:"rating"`
}

type StoreOwner struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
