package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

const (
	maxRetries  = 3
	retryDelay  = 2 * time.Second
	dlqSubject  = "rating.submitted.failed"
	queueGroup  = "rating-audit"
	saveTimeout = 5 * time.Second
)

type msgPublisher interface {
	Publish(subject string, data []byte) error
}

// RatingAuditSubscriber records every rating.submitted event in the
// rating_audit table.
type RatingAuditSubscriber struct {
	natsConn   *nats.Conn
	dlq        msgPublisher
	auditRepo  repository.AuditRepository
	retryDelay time.Duration
}

func NewRatingAuditSubscriber(natsURL string, auditRepo repository.AuditRepository) (*RatingAuditSubscriber, error) {
	nc, err := nats.Connect(natsURL, nats.Name("store-rating-worker"))
	if err != nil {
		return nil, err
	}
	slog.Info("Rating audit subscriber connected to NATS")

	subscriber := &RatingAuditSubscriber{
		natsConn:   nc,
		dlq:        nc,
		auditRepo:  auditRepo,
		retryDelay: retryDelay,
	}

	if _, err := nc.QueueSubscribe(SubjectRatingSubmitted, queueGroup, subscriber.handleRatingSubmitted); err != nil {
		nc.Close()
		return nil, err
	}

	slog.Info("Rating audit subscriber listening", slog.String("subject", SubjectRatingSubmitted))

	return subscriber, nil
}

func (s *RatingAuditSubscriber) handleRatingSubmitted(msg *nats.Msg) {
	s.process(msg.Data)
}

// process returns true when the event was stored.
func (s *RatingAuditSubscriber) process(data []byte) bool {
	var event RatingSubmittedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal rating event", slog.String("error", err.Error()))
		return false
	}

	entry := &model.RatingAudit{
		EventID:    event.EventID.String(),
		UserID:     event.UserID,
		StoreID:    event.StoreID,
		Rating:     event.Rating,
		Outcome:    event.Outcome,
		OccurredAt: event.OccurredAt,
	}

	var saveErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		saveErr = s.auditRepo.SaveRatingEvent(ctx, entry)
		cancel()

		if saveErr == nil {
			return true
		}

		slog.Warn("Failed saving rating audit entry",
			slog.Int("attempt", attempt),
			slog.String("event_id", entry.EventID),
			slog.String("error", saveErr.Error()),
		)
		if attempt < maxRetries {
			time.Sleep(s.retryDelay)
		}
	}

	slog.Error("Giving up on rating audit entry",
		slog.String("event_id", entry.EventID),
		slog.String("error", saveErr.Error()),
	)

	if err := s.dlq.Publish(dlqSubject, data); err != nil {
		slog.Error("Failed to publish to DLQ", slog.String("subject", dlqSubject), slog.String("error", err.Error()))
	}

	return false
}

// Close drains pending messages before closing the connection.
func (s *RatingAuditSubscriber) Close() error {
	return s.natsConn.Drain()
}
