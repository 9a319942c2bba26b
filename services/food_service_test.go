package services

import (
	"context"
	"fmt"
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

func withRepos(t *testing.T, store repositories.Store, fn func(ctx context.Context, r repositories.Repos)) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.WithConn(ctx, func(r repositories.Repos) error {
		fn(ctx, r)
		return nil
	}))
}

func TestFoodServiceLifecycle(t *testing.T) {
	svc := NewFoodService()
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		in := foodInput("Oats", 389, 16.9, 6.9, 66.3)
		in.Weight = 100
		in.DietaryFiber = 10.6
		created, err := svc.Create(ctx, r.Foods, in)
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := svc.Get(ctx, r.Foods, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 10.6, got.DietaryFiber)
		assert.Equal(t, 0.0, got.Sugar)

		name := "Rolled oats"
		zero := 0.0
		updated, err := svc.Update(ctx, r.Foods, created.ID, FoodPatch{Name: &name, Sugar: &zero})
		require.NoError(t, err)
		assert.Equal(t, "Rolled oats", updated.Name)
		assert.Equal(t, 389.0, updated.Calories)

		require.NoError(t, svc.Delete(ctx, r.Foods, created.ID))
		_, err = svc.Get(ctx, r.Foods, created.ID)
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)
	})
}

func TestFoodServiceMissingOrMalformedID(t *testing.T) {
	svc := NewFoodService()
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		_, err := svc.Get(ctx, r.Foods, "not-a-uuid")
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)

		_, err = svc.Get(ctx, r.Foods, uuid.NewString())
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)

		_, err = svc.Update(ctx, r.Foods, uuid.NewString(), FoodPatch{})
		assert.ErrorIs(t, err, utils.ErrResourceNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, r.Foods, uuid.NewString()), utils.ErrResourceNotFound)
	})
}

func TestFoodServiceDeleteReferenced(t *testing.T) {
	svc := NewFoodService()
	meals := NewMealService(time.UTC)
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		food, err := svc.Create(ctx, r.Foods, foodInput("Rice", 130, 2.7, 0.3, 28))
		require.NoError(t, err)
		_, err = meals.AddItem(ctx, r, "u1", MealItemInput{Date: "2024-03-10", MealType: models.MealLunch, FoodID: food.ID, Intake: 1})
		require.NoError(t, err)

		err = svc.Delete(ctx, r.Foods, food.ID)
		assert.ErrorIs(t, err, utils.ErrInvalidRequestPayload)
	})
}

func TestFoodServiceListClampsLimit(t *testing.T) {
	svc := NewFoodService()
	withRepos(t, memstore.New(), func(ctx context.Context, r repositories.Repos) {
		for i := 0; i < MaxFoodPageSize+5; i++ {
			_, err := svc.Create(ctx, r.Foods, foodInput(fmt.Sprintf("food %03d", i), 1, 1, 1, 1))
			require.NoError(t, err)
		}
		all, err := svc.List(ctx, r.Foods, repositories.FoodFilter{Limit: 1000})
		require.NoError(t, err)
		assert.Len(t, all, MaxFoodPageSize)

		page, err := svc.List(ctx, r.Foods, repositories.FoodFilter{})
		require.NoError(t, err)
		assert.Len(t, page, repositories.DefaultFoodPageSize)
		assert.Equal(t, "food 000", page[0].Name)

		found, err := svc.List(ctx, r.Foods, repositories.FoodFilter{Query: "FOOD 20"})
		require.NoError(t, err)
		assert.Len(t, found, 5)
	})
}
