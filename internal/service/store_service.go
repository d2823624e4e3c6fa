package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

var ErrStoreEmailTaken = errors.New("store email already in use")

type CreateStoreInput struct {
	Name    string `json:"name" validate:"required,min=20,max=60"`
	Email   string `json:"email" validate:"required,emailshape"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID int64  `json:"ownerId" validate:"required,gt=0"`
}

type StoreService interface {
	CreateStore(ctx context.Context, in CreateStoreInput) (int64, error)
	ListForAdmin(ctx context.Context, q model.ListQuery) ([]model.AdminStoreItem, error)
	ListForUser(ctx context.Context, userID int64, q model.ListQuery) ([]model.StoreWithUserRating, error)
	// OwnerStore returns the owner's first store (lowest id).
	OwnerStore(ctx context.Context, ownerID int64) (*model.OwnerStoreSummary, error)
	OwnerStores(ctx context.Context, ownerID int64) ([]model.OwnerStoreSummary, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	validate  *validator.Validate
}

func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository) StoreService {
	return &storeService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
		validate:  newValidator(),
	}
}

func (s *storeService) CreateStore(ctx context.Context, in CreateStoreInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if err := validateStruct(s.validate, &in); err != nil {
		return 0, err
	}

	owner, err := s.userRepo.FindByID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrOwnerNotFound
		}
		return 0, err
	}
	if owner.Role != model.RoleStoreOwner {
		return 0, ErrOwnerNotFound
	}

	newID, err := s.storeRepo.Create(ctx, &model.Store{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		OwnerID: in.OwnerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return 0, ErrStoreEmailTaken
		case errors.Is(err, repository.ErrReference):
			return 0, ErrOwnerNotFound
		}
		return 0, err
	}

	return newID, nil
}

func (s *storeService) ListForAdmin(ctx context.Context, q model.ListQuery) ([]model.AdminStoreItem, error) {
	return s.storeRepo.ListForAdmin(ctx, q)
}

func (s *storeService) ListForUser(ctx context.Context, userID int64, q model.ListQuery) ([]model.StoreWithUserRating, error) {
	return s.storeRepo.ListForUser(ctx, userID, q)
}

func (s *storeService) OwnerStore(ctx context.Context, ownerID int64) (*model.OwnerStoreSummary, error) {
	stores, err := s.storeRepo.ListOwnerSummaries(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, ErrStoreNotFound
	}
	return &stores[0], nil
}

func (s *storeService) OwnerStores(ctx context.Context, ownerID int64) ([]model.OwnerStoreSummary, error) {
	return s.storeRepo.ListOwnerSummaries(ctx, ownerID)
}
