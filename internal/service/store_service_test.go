package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

func seedUser(t *testing.T, db *memDB, email, role string) int64 {
	t.Helper()
	id, err := memUsers{db}.Create(context.Background(), &model.User{Name: "Seeded Account Name " + role, Email: email, Role: role})
	require.NoError(t, err)
	return id
}

func storeInput(ownerID int64) service.CreateStoreInput {
	return service.CreateStoreInput{
		Name:    "Riverside Hardware Supplies",
		Email:   "hardware@example.com",
		Address: "1 River Road",
		OwnerID: ownerID,
	}
}

func TestStoreService_CreateStore(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)

	id, err := svc.CreateStore(context.Background(), storeInput(ownerID))
	require.NoError(t, err)
	assert.Equal(t, ownerID, db.stores[id].OwnerID)

	_, err = svc.CreateStore(context.Background(), storeInput(ownerID))
	assert.ErrorIs(t, err, service.ErrStoreEmailTaken)
}

func TestStoreService_CreateStoreEmailIgnoresCase(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)

	in := storeInput(ownerID)
	in.Email = "Hardware@Example.COM"
	id, err := svc.CreateStore(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "hardware@example.com", db.stores[id].Email)

	_, err = svc.CreateStore(context.Background(), storeInput(ownerID))
	assert.ErrorIs(t, err, service.ErrStoreEmailTaken)
}

func TestStoreService_CreateStoreOwnerChecks(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	plainID := seedUser(t, db, "plain@example.com", model.RoleUser)

	_, err := svc.CreateStore(context.Background(), storeInput(plainID))
	assert.ErrorIs(t, err, service.ErrOwnerNotFound)

	_, err = svc.CreateStore(context.Background(), storeInput(404))
	assert.ErrorIs(t, err, service.ErrOwnerNotFound)

	_, err = svc.CreateStore(context.Background(), storeInput(0))
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, db.stores)
}

func TestStoreService_CreateStoreValidation(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)

	in := storeInput(ownerID)
	in.Name = "Tiny"
	in.Email = "nope"

	_, err := svc.CreateStore(context.Background(), in)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"Name must be between 20 and 60 characters", "Invalid email format"}, verr.Violations)
}

func TestStoreService_OwnerStore(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)
	ctx := context.Background()

	_, err := svc.OwnerStore(ctx, ownerID)
	assert.ErrorIs(t, err, service.ErrStoreNotFound)

	firstID, err := svc.CreateStore(ctx, storeInput(ownerID))
	require.NoError(t, err)
	second := storeInput(ownerID)
	second.Email = "second@example.com"
	_, err = svc.CreateStore(ctx, second)
	require.NoError(t, err)

	_, _, err = memRatings{db}.Upsert(ctx, 99, firstID, 5)
	require.NoError(t, err)

	summary, err := svc.OwnerStore(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, firstID, summary.ID)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, 1, summary.TotalRatings)

	all, err := svc.OwnerStores(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStoreService_ListForUserCarriesOwnRating(t *testing.T) {
	db := newMemDB()
	svc := service.NewStoreService(memStores{db}, memUsers{db})
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)
	ctx := context.Background()

	storeID, err := svc.CreateStore(ctx, storeInput(ownerID))
	require.NoError(t, err)
	_, _, err = memRatings{db}.Upsert(ctx, 11, storeID, 3)
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, 11, model.ListQuery{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].UserRating)
	assert.Equal(t, 3, *mine[0].UserRating)

	theirs, err := svc.ListForUser(ctx, 12, model.ListQuery{})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Nil(t, theirs[0].UserRating)
	assert.Equal(t, 3.0, theirs[0].AverageRating)
}

func TestAdminService_Stats(t *testing.T) {
	db := newMemDB()
	ownerID := seedUser(t, db, "owner@example.com", model.RoleStoreOwner)
	seedUser(t, db, "user@example.com", model.RoleUser)
	stores := service.NewStoreService(memStores{db}, memUsers{db})
	storeID, err := stores.CreateStore(context.Background(), storeInput(ownerID))
	require.NoError(t, err)
	_, _, err = memRatings{db}.Upsert(context.Background(), 2, storeID, 4)
	require.NoError(t, err)

	admin := service.NewAdminService(memStats{db}, memUsers{db})

	stats, err := admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{TotalUsers: 2, TotalStores: 1, TotalRatings: 1}, stats)

	users, err := admin.ListUsers(context.Background(), model.ListQuery{})
	require.NoError(t, err)
	for _, u := range users {
		if u.Role == model.RoleStoreOwner {
			require.NotNil(t, u.Rating)
			assert.Equal(t, 4.0, *u.Rating)
		} else {
			assert.Nil(t, u.Rating)
		}
	}

	owners, err := admin.ListStoreOwners(context.Background())
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, ownerID, owners[0].ID)
}
