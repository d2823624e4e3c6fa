package api_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthService) CreateUser(ctx context.Context, in service.RegisterInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*service.LoginResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(*model.Identity)
	return identity, args.Error(1)
}

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.Stats)
	return stats, args.Error(1)
}

func (m *mockAdminService) ListUsers(ctx context.Context, q model.ListQuery) ([]model.UserListItem, error) {
	args := m.Called(ctx, q)
	users, _ := args.Get(0).([]model.UserListItem)
	return users, args.Error(1)
}

func (m *mockAdminService) ListStoreOwners(ctx context.Context) ([]model.StoreOwner, error) {
	args := m.Called(ctx)
	owners, _ := args.Get(0).([]model.StoreOwner)
	return owners, args.Error(1)
}

type mockStoreService struct {
	mock.Mock
}

func (m *mockStoreService) CreateStore(ctx context.Context, in service.CreateStoreInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStoreService) ListForAdmin(ctx context.Context, q model.ListQuery) ([]model.AdminStoreItem, error) {
	args := m.Called(ctx, q)
	stores, _ := args.Get(0).([]model.AdminStoreItem)
	return stores, args.Error(1)
}

func (m *mockStoreService) ListForUser(ctx context.Context, userID int64, q model.ListQuery) ([]model.StoreWithUserRating, error) {
	args := m.Called(ctx, userID, q)
	stores, _ := args.Get(0).([]model.StoreWithUserRating)
	return stores, args.Error(1)
}

func (m *mockStoreService) OwnerStore(ctx context.Context, ownerID int64) (*model.OwnerStoreSummary, error) {
	args := m.Called(ctx, ownerID)
	store, _ := args.Get(0).(*model.OwnerStoreSummary)
	return store, args.Error(1)
}

func (m *mockStoreService) OwnerStores(ctx context.Context, ownerID int64) ([]model.OwnerStoreSummary, error) {
	args := m.Called(ctx, ownerID)
	stores, _ := args.Get(0).([]model.OwnerStoreSummary)
	return stores, args.Error(1)
}

type mockRatingService struct {
	mock.Mock
}

func (m *mockRatingService) SubmitRating(ctx context.Context, userID, storeID int64, value float64) (service.RatingOutcome, error) {
	args := m.Called(ctx, userID, storeID, value)
	return args.Get(0).(service.RatingOutcome), args.Error(1)
}

func (m *mockRatingService) AverageRating(ctx context.Context, storeID int64) (float64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRatingService) RatersOf(ctx context.Context, storeID, ownerID int64, q model.ListQuery) ([]model.Rater, error) {
	args := m.Called(ctx, storeID, ownerID, q)
	raters, _ := args.Get(0).([]model.Rater)
	return raters, args.Error(1)
}
