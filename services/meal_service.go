package services

import (
	"context"
	"errors"
	"time"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
)

type MealItemInput struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	MealType string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodID   string  `json:"foodId" validate:"required,uuid"`
	Intake   float64 `json:"intake" validate:"required,gt=0"`
}

type MealService struct {
	loc *time.Location
}

func NewMealService(loc *time.Location) *MealService {
	if loc == nil {
		loc = time.Local
	}
	return &MealService{loc: loc}
}

func (s *MealService) Location() *time.Location { return s.loc }

func (s *MealService) key(userID string, day time.Time, mealType string) repositories.MealKey {
	start, _ := DayWindow(day, s.loc)
	return repositories.MealKey{UserID: userID, Date: start, MealType: mealType}
}

// Get returns the user's meal for the slot with items in insertion order.
func (s *MealService) Get(ctx context.Context, meals repositories.MealRepository, userID string, day time.Time, mealType string) (*models.Meal, error) {
	return meals.FindByKey(ctx, s.key(userID, day, mealType))
}

// AddItem appends a food to the slot's meal, creating the meal on first use.
func (s *MealService) AddItem(ctx context.Context, repos repositories.Repos, userID string, in MealItemInput) (*models.MealItem, error) {
	day, err := ParseDay(in.Date, s.loc)
	if err != nil {
		return nil, err
	}
	if err := checkID("food", in.FoodID); err != nil {
		return nil, err
	}
	if _, err := repos.Foods.Get(ctx, in.FoodID); err != nil {
		return nil, err
	}

	meal, err := s.upsertMeal(ctx, repos.Meals, s.key(userID, day, in.MealType))
	if err != nil {
		return nil, err
	}
	item := &models.MealItem{MealID: meal.ID, FoodID: in.FoodID, Intake: in.Intake}
	if err := repos.Meals.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MealService) upsertMeal(ctx context.Context, meals repositories.MealRepository, key repositories.MealKey) (*models.Meal, error) {
	meal, err := meals.FindByKey(ctx, key)
	if err == nil {
		return meal, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	meal = &models.Meal{UserID: key.UserID, Date: key.Date, MealType: key.MealType}
	err = meals.Create(ctx, meal)
	if errors.Is(err, repositories.ErrDuplicate) {
		// lost a race with a concurrent insert of the same slot
		return meals.FindByKey(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *MealService) RemoveItem(ctx context.Context, meals repositories.MealRepository, userID, itemID string) error {
	if err := checkID("meal item", itemID); err != nil {
		return err
	}
	return meals.DeleteItem(ctx, userID, itemID)
}
