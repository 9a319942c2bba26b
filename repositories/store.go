// Package repositories is the persistence collaborator: plain CRUD,
// unique lookups and range queries over gorm.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/utils"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrReferenced reports a row that other rows still point to.
	ErrReferenced = errors.New("entry is still referenced")
)

type FoodFilter struct {
	Query  string
	Limit  int
	Offset int
}

// MealKey is the composite key of a meal.
type MealKey struct {
	UserID   string
	Date     time.Time
	MealType string
}

type FoodRepository interface {
	Create(ctx context.Context, food *models.Food) error
	Get(ctx context.Context, id string) (*models.Food, error)
	List(ctx context.Context, filter FoodFilter) ([]models.Food, error)
	Update(ctx context.Context, food *models.Food) error
	Delete(ctx context.Context, id string) error
}

type MealRepository interface {
	// FindByKey returns the meal with its items and their foods.
	FindByKey(ctx context.Context, key MealKey) (*models.Meal, error)
	Create(ctx context.Context, meal *models.Meal) error
	// ItemsInRange returns every item of the user's meals dated in [from, to),
	// with Food and Meal (without its items) loaded.
	ItemsInRange(ctx context.Context, userID string, from, to time.Time) ([]models.MealItem, error)
	AddItem(ctx context.Context, item *models.MealItem) error
	DeleteItem(ctx context.Context, userID, itemID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Repos is the set of repositories bound to one acquired connection.
type Repos struct {
	Foods FoodRepository
	Meals MealRepository
	Users UserRepository
}

// Store hands out connection-scoped repositories. The connection is
// acquired before fn runs and released when it returns, on every path.
type Store interface {
	WithConn(ctx context.Context, fn func(Repos) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithConn(ctx context.Context, fn func(Repos) error) error {
	return s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		// tx is not a session; chaining on it directly would leak clauses
		// between queries.
		return fn(NewRepos(tx.Session(&gorm.Session{NewDB: true})))
	})
}

// NewRepos builds repositories over db without acquiring a dedicated
// connection; used by the CLI.
func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Foods: NewFoodRepository(db),
		Meals: NewMealRepository(db),
		Users: NewUserRepository(db),
	}
}

// translate maps driver errors onto the package and request error set.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, utils.ErrResourceNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", what, ErrDuplicate)
		case "23503":
			return fmt.Errorf("%s: %w", what, ErrReferenced)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
