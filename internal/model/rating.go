package model

import "time"

type Rating struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	StoreID   int64     `db:"store_id"`
	Rating    int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Rater struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Rating    int       `db:"rating" json:"rating"`
	RatedAt   time.Time `db:"rated_at" json:"ratedAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type RatingAudit struct {
	EventID    string    `db:"event_id"`
	UserID     int64     `db:"user_id"`
	StoreID    int64     `db:"store_id"`
	Rating     int       `db:"rating"`
	Outcome    string    `db:"outcome"`
	OccurredAt time.Time `db:"occurred_at"`
}
