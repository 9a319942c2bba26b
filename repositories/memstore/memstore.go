// Package memstore is an in-memory repositories.Store for tests and local
// experiments. It tracks acquired and released connections.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

type Store struct {
	mu    sync.Mutex
	foods map[string]models.Food
	meals map[string]models.Meal
	items []models.MealItem
	users map[string]models.User

	acquired atomic.Int64
	released atomic.Int64
}

func New() *Store {
	return &Store{
		foods: map[string]models.Food{},
		meals: map[string]models.Meal{},
		users: map[string]models.User{},
	}
}

func (s *Store) WithConn(ctx context.Context, fn func(repositories.Repos) error) error {
	s.acquired.Add(1)
	defer s.released.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(repositories.Repos{
		Foods: foodRepo{s},
		Meals: mealRepo{s},
		Users: userRepo{s},
	})
}

// Acquired counts connections handed out so far.
func (s *Store) Acquired() int64 { return s.acquired.Load() }

// Open counts connections acquired but not yet released.
func (s *Store) Open() int64 { return s.acquired.Load() - s.released.Load() }

// FoodCount reports how many foods are stored.
func (s *Store) FoodCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.foods)
}

func stamp(b *models.Base) {
	now := time.Now()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, utils.ErrResourceNotFound)
}

type foodRepo struct{ s *Store }

func (r foodRepo) Create(_ context.Context, food *models.Food) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&food.Base)
	if _, ok := r.s.foods[food.ID]; ok {
		return fmt.Errorf("create food: %w", repositories.ErrDuplicate)
	}
	r.s.foods[food.ID] = *food
	return nil
}

func (r foodRepo) Get(_ context.Context, id string) (*models.Food, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	food, ok := r.s.foods[id]
	if !ok {
		return nil, notFound("get food " + id)
	}
	return &food, nil
}

func (r foodRepo) List(_ context.Context, filter repositories.FoodFilter) ([]models.Food, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.Food, 0, len(r.s.foods))
	for _, f := range r.s.foods {
		if q == "" || strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	limit := filter.Limit
	if limit <= 0 {
		limit = repositories.DefaultFoodPageSize
	}
	if filter.Offset >= len(out) {
		return []models.Food{}, nil
	}
	out = out[filter.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r foodRepo) Update(_ context.Context, food *models.Food) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.foods[food.ID]
	if !ok {
		return notFound("update food " + food.ID)
	}
	food.CreatedAt = prev.CreatedAt
	food.UpdatedAt = time.Now()
	r.s.foods[food.ID] = *food
	return nil
}

func (r foodRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.foods[id]; !ok {
		return notFound("delete food " + id)
	}
	for _, it := range r.s.items {
		if it.FoodID == id {
			return fmt.Errorf("delete food %s: %w", id, repositories.ErrReferenced)
		}
	}
	delete(r.s.foods, id)
	return nil
}

type mealRepo struct{ s *Store }

func (r mealRepo) FindByKey(_ context.Context, key repositories.MealKey) (*models.Meal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.meals {
		if m.UserID == key.UserID && m.Date.Equal(key.Date) && m.MealType == key.MealType {
			m.Items = r.itemsOf(m.ID)
			return &m, nil
		}
	}
	return nil, notFound("find meal")
}

// itemsOf expects r.s.mu to be held.
func (r mealRepo) itemsOf(mealID string) []models.MealItem {
	var out []models.MealItem
	for _, it := range r.s.items {
		if it.MealID == mealID {
			it.Food = r.s.foods[it.FoodID]
			out = append(out, it)
		}
	}
	return out
}

func (r mealRepo) Create(_ context.Context, meal *models.Meal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.meals {
		if m.UserID == meal.UserID && m.Date.Equal(meal.Date) && m.MealType == meal.MealType {
			return fmt.Errorf("create meal: %w", repositories.ErrDuplicate)
		}
	}
	stamp(&meal.Base)
	stored := *meal
	stored.Items = nil
	r.s.meals[meal.ID] = stored
	return nil
}

func (r mealRepo) ItemsInRange(_ context.Context, userID string, from, to time.Time) ([]models.MealItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.MealItem
	for _, it := range r.s.items {
		m, ok := r.s.meals[it.MealID]
		if !ok || m.UserID != userID || m.Date.Before(from) || !m.Date.Before(to) {
			continue
		}
		it.Food = r.s.foods[it.FoodID]
		it.Meal = m
		it.Meal.Items = nil
		out = append(out, it)
	}
	return out, nil
}

func (r mealRepo) AddItem(_ context.Context, item *models.MealItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.meals[item.MealID]; !ok {
		return fmt.Errorf("add meal item: %w", repositories.ErrReferenced)
	}
	if _, ok := r.s.foods[item.FoodID]; !ok {
		return fmt.Errorf("add meal item: %w", repositories.ErrReferenced)
	}
	stamp(&item.Base)
	stored := *item
	stored.Food = models.Food{}
	stored.Meal = models.Meal{}
	r.s.items = append(r.s.items, stored)
	return nil
}

func (r mealRepo) DeleteItem(_ context.Context, userID, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, it := range r.s.items {
		if it.ID != itemID {
			continue
		}
		if m, ok := r.s.meals[it.MealID]; !ok || m.UserID != userID {
			break
		}
		r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
		return nil
	}
	return notFound("delete meal item " + itemID)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.Email = repositories.NormalizeEmail(user.Email)
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", repositories.ErrDuplicate)
		}
	}
	stamp(&user.Base)
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) Get(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("get user")
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = repositories.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("find user by email")
}

func (r userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.users[user.ID]
	if !ok {
		return notFound("update user")
	}
	user.Email = repositories.NormalizeEmail(user.Email)
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("update user: %w", repositories.ErrDuplicate)
		}
	}
	user.CreatedAt = prev.CreatedAt
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}
