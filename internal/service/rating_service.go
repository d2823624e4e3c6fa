package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/ankleshchaudhari/store-rating-app/internal/events"
	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

type RatingOutcome string

const (
	RatingCreated RatingOutcome = "created"
	RatingUpdated RatingOutcome = "updated"
)

const (
	minRating = 1
	maxRating = 5
)

type RatingService interface {
	// SubmitRating takes the value as decoded from JSON so fractional
	// input is rejected instead of truncated.
	SubmitRating(ctx context.Context, userID, storeID int64, value float64) (RatingOutcome, error)
	AverageRating(ctx context.Context, storeID int64) (float64, error)
	RatersOf(ctx context.Context, storeID, ownerID int64, q model.ListQuery) ([]model.Rater, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	publisher  events.EventPublisher
}

func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository, pub events.EventPublisher) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		publisher:  pub,
	}
}

func validRatingValue(v float64) bool {
	return v == math.Trunc(v) && v >= minRating && v <= maxRating
}

func (s *ratingService) SubmitRating(ctx context.Context, userID, storeID int64, value float64) (RatingOutcome, error) {
	if !validRatingValue(value) {
		return "", newValidationError("Rating must be an integer between 1 and 5")
	}
	if storeID <= 0 {
		return "", newValidationError("Store ID and rating are required")
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrStoreNotFound
		}
		return "", err
	}

	rating, inserted, err := s.ratingRepo.Upsert(ctx, userID, storeID, int(value))
	if err != nil {
		// the store can vanish between the lookup and the write
		if errors.Is(err, repository.ErrReference) {
			return "", ErrStoreNotFound
		}
		return "", err
	}

	outcome := RatingUpdated
	if inserted {
		outcome = RatingCreated
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRatingSubmitted(rating, string(outcome)); err != nil {
			slog.WarnContext(ctx, "Failed to publish rating event",
				slog.Int64("store_id", storeID),
				slog.String("error", err.Error()),
			)
		}
	}

	return outcome, nil
}

func (s *ratingService) AverageRating(ctx context.Context, storeID int64) (float64, error) {
	avg, err := s.ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(avg) {
		return 0, nil
	}
	return avg, nil
}

func (s *ratingService) RatersOf(ctx context.Context, storeID, ownerID int64, q model.ListQuery) ([]model.Rater, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	// Someone else's store looks the same as a missing one.
	if store.OwnerID != ownerID {
		return nil, ErrStoreNotFound
	}

	return s.ratingRepo.ListRaters(ctx, storeID, q)
}
