package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
)

const SubjectRatingSubmitted = "rating.submitted"

type EventPublisher interface {
	PublishRatingSubmitted(rating *model.Rating, outcome string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("store-rating-api"))

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type RatingSubmittedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     int64     `json:"user_id"`
	StoreID    int64     `json:"store_id"`
	Rating     int       `json:"rating"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewRatingSubmittedEvent(rating *model.Rating, outcome string) RatingSubmittedEvent {
	return RatingSubmittedEvent{
		EventID:    uuid.New(),
		EventType:  SubjectRatingSubmitted,
		UserID:     rating.UserID,
		StoreID:    rating.StoreID,
		Rating:     rating.Rating,
		Outcome:    outcome,
		OccurredAt: rating.UpdatedAt,
	}
}

func (p *NatsPublisher) PublishRatingSubmitted(rating *model.Rating, outcome string) error {
	event := NewRatingSubmittedEvent(rating, outcome)

	eventJSON, err := json.Marshal(event)

	if err != nil {
		return err
	}

	if err := p.conn.Publish(SubjectRatingSubmitted, eventJSON); err != nil {
		return err
	}

	slog.Debug("Published rating event",
		slog.String("subject", SubjectRatingSubmitted),
		slog.String("event_id", event.EventID.String()),
	)

	return nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}
