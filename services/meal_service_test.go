package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/repositories/memstore"
	"github.com/fitdiary/backend/utils"
)

func TestMealServiceAddItemReusesMeal(t *testing.T) {
	svc := NewMealService(time.UTC)
	foods := NewFoodService()
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		egg, err := foods.Create(ctx, r.Foods, foodInput("Egg", 78, 6.3, 5.3, 0.6))
		require.NoError(t, err)

		in := MealItemInput{Date: "2024-03-10", MealType: models.MealBreakfast, FoodID: egg.ID, Intake: 2}
		first, err := svc.AddItem(ctx, r, "u1", in)
		require.NoError(t, err)
		in.Intake = 1
		second, err := svc.AddItem(ctx, r, "u1", in)
		require.NoError(t, err)
		assert.Equal(t, first.MealID, second.MealID)

		meal, err := svc.Get(ctx, r.Meals, "u1", time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC), models.MealBreakfast)
		require.NoError(t, err)
		require.Len(t, meal.Items, 2)
		assert.Equal(t, "Egg", meal.Items[0].Food.Name)
		assert.Equal(t, 2.0, meal.Items[0].Intake)

		_, err = svc.Get(ctx, r.Meals, "u1", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), models.MealDinner)
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)
	})
}

func TestMealServiceAddItemUnknownFood(t *testing.T) {
	svc := NewMealService(time.UTC)
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		_, err := svc.AddItem(ctx, r, "u1", MealItemInput{Date: "2024-03-10", MealType: models.MealLunch, FoodID: uuid.NewString(), Intake: 1})
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)

		_, err = svc.AddItem(ctx, r, "u1", MealItemInput{Date: "March 10", MealType: models.MealLunch, FoodID: uuid.NewString(), Intake: 1})
		assert.ErrorIs(t, err, utils.ErrInvalidRequestPayload)
	})
}

func TestMealServiceRemoveItem(t *testing.T) {
	svc := NewMealService(time.UTC)
	foods := NewFoodService()
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		tea, err := foods.Create(ctx, r.Foods, foodInput("Tea", 2, 0, 0, 0.3))
		require.NoError(t, err)
		item, err := svc.AddItem(ctx, r, "u1", MealItemInput{Date: "2024-03-10", MealType: models.MealSnack, FoodID: tea.ID, Intake: 1})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.RemoveItem(ctx, r.Meals, "u2", item.ID), utils.ErrResourceNotFound)
		assert.ErrorIs(t, svc.RemoveItem(ctx, r.Meals, "u1", "bogus"), utils.ErrResourceNotFound)
		require.NoError(t, svc.RemoveItem(ctx, r.Meals, "u1", item.ID))
		assert.ErrorIs(t, svc.RemoveItem(ctx, r.Meals, "u1", item.ID), utils.ErrResourceNotFound)
	})
}
