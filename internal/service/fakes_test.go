package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// memDB is an in-memory credential store shared by the fake repositories.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*model.User
	stores  map[int64]*model.Store
	ratings map[[2]int64]*model.Rating
	now     func() time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[int64]*model.User{},
		stores:  map[int64]*model.Store{},
		ratings: map[[2]int64]*model.Rating{},
		now:     time.Now,
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) deleteUser(id int64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.users, id)
}

func (db *memDB) setRole(id int64, role string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[id].Role = role
}

func (db *memDB) ratingRows(userID, storeID int64) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.ratings[[2]int64{userID, storeID}]; ok {
		return 1
	}
	return 0
}

// average must be called with mu held.
func (db *memDB) average(storeID int64) (float64, int) {
	var sum, n int
	for key, r := range db.ratings {
		if key[1] == storeID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

type memUsers struct{ *memDB }

func (r memUsers) Create(_ context.Context, user *model.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}

	u := *user
	u.ID = r.id()
	u.CreatedAt, u.UpdatedAt = r.now(), r.now()
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) List(_ context.Context, _ model.ListQuery) ([]model.UserListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []model.UserListItem{}
	for _, u := range r.users {
		item := model.UserListItem{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role}
		if u.Role == model.RoleStoreOwner {
			var sum float64
			var n int
			for _, s := range r.stores {
				if s.OwnerID == u.ID {
					avg, cnt := r.average(s.ID)
					sum += avg * float64(cnt)
					n += cnt
				}
			}
			rating := 0.0
			if n > 0 {
				rating = sum / float64(n)
			}
			item.Rating = &rating
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r memUsers) ListStoreOwners(_ context.Context) ([]model.StoreOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := []model.StoreOwner{}
	for _, u := range r.users {
		if u.Role == model.RoleStoreOwner {
			owners = append(owners, model.StoreOwner{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Name < owners[j].Name })
	return owners, nil
}

type memStores struct{ *memDB }

func (r memStores) Create(_ context.Context, store *model.Store) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[store.OwnerID]; !ok {
		return 0, repository.ErrReference
	}
	for _, s := range r.stores {
		if s.Email == store.Email {
			return 0, repository.ErrDuplicate
		}
	}

	s := *store
	s.ID = r.id()
	s.CreatedAt = r.now()
	r.stores[s.ID] = &s
	return s.ID, nil
}

func (r memStores) FindByID(_ context.Context, id int64) (*model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r memStores) ListForAdmin(_ context.Context, _ model.ListQuery) ([]model.AdminStoreItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []model.AdminStoreItem{}
	for _, s := range r.stores {
		avg, _ := r.average(s.ID)
		items = append(items, model.AdminStoreItem{ID: s.ID, Name: s.Name, Email: s.Email, Address: s.Address, OwnerID: s.OwnerID, Rating: avg})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r memStores) ListForUser(_ context.Context, userID int64, _ model.ListQuery) ([]model.StoreWithUserRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []model.StoreWithUserRating{}
	for _, s := range r.stores {
		avg, _ := r.average(s.ID)
		item := model.StoreWithUserRating{ID: s.ID, Name: s.Name, Address: s.Address, AverageRating: avg}
		if rt, ok := r.ratings[[2]int64{userID, s.ID}]; ok {
			v := rt.Rating
			item.UserRating = &v
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r memStores) ListOwnerSummaries(_ context.Context, ownerID int64) ([]model.OwnerStoreSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []model.OwnerStoreSummary{}
	for _, s := range r.stores {
		if s.OwnerID != ownerID {
			continue
		}
		avg, n := r.average(s.ID)
		items = append(items, model.OwnerStoreSummary{ID: s.ID, Name: s.Name, Address: s.Address, AverageRating: avg, TotalRatings: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

type memRatings struct{ *memDB }

// Upsert holds the lock across the existence check and the write, which is
// what the ON CONFLICT statement gives us in Postgres.
func (r memRatings) Upsert(_ context.Context, userID, storeID int64, value int) (*model.Rating, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[storeID]; !ok {
		return nil, false, repository.ErrReference
	}

	key := [2]int64{userID, storeID}
	now := r.now()
	if existing, ok := r.ratings[key]; ok {
		existing.Rating = value
		existing.UpdatedAt = now
		cp := *existing
		return &cp, false, nil
	}

	rt := &model.Rating{ID: r.id(), UserID: userID, StoreID: storeID, Rating: value, CreatedAt: now, UpdatedAt: now}
	r.ratings[key] = rt
	cp := *rt
	return &cp, true, nil
}

func (r memRatings) AverageForStore(_ context.Context, storeID int64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	avg, _ := r.average(storeID)
	return avg, nil
}

func (r memRatings) ListRaters(_ context.Context, storeID int64, _ model.ListQuery) ([]model.Rater, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raters := []model.Rater{}
	for key, rt := range r.ratings {
		if key[1] != storeID {
			continue
		}
		u := r.users[key[0]]
		raters = append(raters, model.Rater{ID: u.ID, Name: u.Name, Email: u.Email, Rating: rt.Rating, RatedAt: rt.CreatedAt, UpdatedAt: rt.UpdatedAt})
	}
	sort.Slice(raters, func(i, j int) bool { return raters[i].RatedAt.After(raters[j].RatedAt) })
	return raters, nil
}

type memStats struct{ *memDB }

func (r memStats) Totals(_ context.Context) (*model.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &model.Stats{TotalUsers: len(r.users), TotalStores: len(r.stores), TotalRatings: len(r.ratings)}, nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRatingSubmitted(rating *model.Rating, outcome string) error {
	args := m.Called(rating, outcome)
	return args.Error(0)
}

type mockStoreRepo struct {
	mock.Mock
	repository.StoreRepository
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id int64) (*model.Store, error) {
	args := m.Called(ctx, id)
	store, _ := args.Get(0).(*model.Store)
	return store, args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
	repository.RatingRepository
}

func (m *mockRatingRepo) Upsert(ctx context.Context, userID, storeID int64, value int) (*model.Rating, bool, error) {
	args := m.Called(ctx, userID, storeID, value)
	rating, _ := args.Get(0).(*model.Rating)
	return rating, args.Bool(1), args.Error(2)
}

var errStoreDown = errors.New("connection refused")
