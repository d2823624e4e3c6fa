package service

import (
	"context"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

type AdminService interface {
	Stats(ctx context.Context) (*model.Stats, error)
	ListUsers(ctx context.Context, q model.ListQuery) ([]model.UserListItem, error)
	ListStoreOwners(ctx context.Context) ([]model.StoreOwner, error)
}

type adminService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

func NewAdminService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{statsRepo: statsRepo, userRepo: userRepo}
}

func (s *adminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.statsRepo.Totals(ctx)
}

func (s *adminService) ListUsers(ctx context.Context, q model.ListQuery) ([]model.UserListItem, error) {
	return s.userRepo.List(ctx, q)
}

func (s *adminService) ListStoreOwners(ctx context.Context) ([]model.StoreOwner, error) {
	return s.userRepo.ListStoreOwners(ctx)
}
