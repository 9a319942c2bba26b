package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

func TestWithConnReleasesOnError(t *testing.T) {
	s := New()
	boom := errors.New("boom")

	err := s.WithConn(context.Background(), func(repositories.Repos) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), s.Acquired())
	assert.Equal(t, int64(0), s.Open())
}

func TestWithConnReleasesOnPanic(t *testing.T) {
	s := New()
	assert.Panics(t, func() {
		_ = s.WithConn(context.Background(), func(repositories.Repos) error { panic("boom") })
	})
	assert.Equal(t, int64(0), s.Open())
}

func TestMealItemsScopedToUserAndDay(t *testing.T) {
	s := New()
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	err := s.WithConn(ctx, func(r repositories.Repos) error {
		food := &models.Food{Name: "Apple", Calories: 95}
		require.NoError(t, r.Foods.Create(ctx, food))

		meal := &models.Meal{UserID: "u1", Date: day, MealType: models.MealLunch}
		require.NoError(t, r.Meals.Create(ctx, meal))
		dup := &models.Meal{UserID: "u1", Date: day, MealType: models.MealLunch}
		assert.ErrorIs(t, r.Meals.Create(ctx, dup), repositories.ErrDuplicate)

		item := &models.MealItem{MealID: meal.ID, FoodID: food.ID, Intake: 2}
		require.NoError(t, r.Meals.AddItem(ctx, item))

		items, err := r.Meals.ItemsInRange(ctx, "u1", day, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Apple", items[0].Food.Name)

		items, err = r.Meals.ItemsInRange(ctx, "u1", day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Empty(t, items)

		assert.ErrorIs(t, r.Meals.DeleteItem(ctx, "u2", item.ID), utils.ErrResourceNotFound)
		assert.ErrorIs(t, r.Foods.Delete(ctx, food.ID), repositories.ErrReferenced)
		require.NoError(t, r.Meals.DeleteItem(ctx, "u1", item.ID))
		return r.Foods.Delete(ctx, food.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.FoodCount())
}

func TestFoodListMatchesWildcardsLiterally(t *testing.T) {
	s := New()
	ctx := context.Background()
	err := s.WithConn(ctx, func(r repositories.Repos) error {
		require.NoError(t, r.Foods.Create(ctx, &models.Food{Name: "Apple"}))
		require.NoError(t, r.Foods.Create(ctx, &models.Food{Name: "Milk 2% fat"}))

		for q, want := range map[string]int{"%": 1, "_": 0, "2%": 1, "ap": 1, "": 2} {
			foods, err := r.Foods.List(ctx, repositories.FoodFilter{Query: q})
			require.NoError(t, err)
			assert.Len(t, foods, want, "query %q", q)
		}
		return nil
	})
	require.NoError(t, err)
}
