package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

// MaxFoodPageSize caps List.
const MaxFoodPageSize = 200

// FoodInput creates a food. The macro pointers are required so an explicit
// zero is accepted while a missing field is not.
type FoodInput struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Weight   float64  `json:"weight" validate:"gte=0"`
	Calories *float64 `json:"calories" validate:"required,gte=0"`
	Protein  *float64 `json:"protein" validate:"required,gte=0"`
	Fat      *float64 `json:"fat" validate:"required,gte=0"`
	Carbs    *float64 `json:"carbs" validate:"required,gte=0"`

	TransFat           float64 `json:"transFat" validate:"gte=0"`
	SaturatedFat       float64 `json:"saturatedFat" validate:"gte=0"`
	MonounsaturatedFat float64 `json:"monounsaturatedFat" validate:"gte=0"`
	PolyunsaturatedFat float64 `json:"polyunsaturatedFat" validate:"gte=0"`
	Sugar              float64 `json:"sugar" validate:"gte=0"`
	DietaryFiber       float64 `json:"dietaryFiber" validate:"gte=0"`
	Sodium             float64 `json:"sodium" validate:"gte=0"`
	Potassium          float64 `json:"potassium" validate:"gte=0"`
}

// FoodPatch updates the fields that are present.
type FoodPatch struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0"`
	Calories *float64 `json:"calories" validate:"omitempty,gte=0"`
	Protein  *float64 `json:"protein" validate:"omitempty,gte=0"`
	Fat      *float64 `json:"fat" validate:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs" validate:"omitempty,gte=0"`

	TransFat           *float64 `json:"transFat" validate:"omitempty,gte=0"`
	SaturatedFat       *float64 `json:"saturatedFat" validate:"omitempty,gte=0"`
	MonounsaturatedFat *float64 `json:"monounsaturatedFat" validate:"omitempty,gte=0"`
	PolyunsaturatedFat *float64 `json:"polyunsaturatedFat" validate:"omitempty,gte=0"`
	Sugar              *float64 `json:"sugar" validate:"omitempty,gte=0"`
	DietaryFiber       *float64 `json:"dietaryFiber" validate:"omitempty,gte=0"`
	Sodium             *float64 `json:"sodium" validate:"omitempty,gte=0"`
	Potassium          *float64 `json:"potassium" validate:"omitempty,gte=0"`
}

func (p FoodPatch) apply(f *models.Food) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Weight, p.Weight)
	set(&f.Calories, p.Calories)
	set(&f.Protein, p.Protein)
	set(&f.Fat, p.Fat)
	set(&f.Carbs, p.Carbs)
	set(&f.TransFat, p.TransFat)
	set(&f.SaturatedFat, p.SaturatedFat)
	set(&f.MonounsaturatedFat, p.MonounsaturatedFat)
	set(&f.PolyunsaturatedFat, p.PolyunsaturatedFat)
	set(&f.Sugar, p.Sugar)
	set(&f.DietaryFiber, p.DietaryFiber)
	set(&f.Sodium, p.Sodium)
	set(&f.Potassium, p.Potassium)
}

type FoodService struct{}

func NewFoodService() *FoodService {
	return &FoodService{}
}

func (s *FoodService) Create(ctx context.Context, foods repositories.FoodRepository, in FoodInput) (*models.Food, error) {
	food := &models.Food{
		Name:               in.Name,
		Weight:             in.Weight,
		Calories:           *in.Calories,
		Protein:            *in.Protein,
		Fat:                *in.Fat,
		Carbs:              *in.Carbs,
		TransFat:           in.TransFat,
		SaturatedFat:       in.SaturatedFat,
		MonounsaturatedFat: in.MonounsaturatedFat,
		PolyunsaturatedFat: in.PolyunsaturatedFat,
		Sugar:              in.Sugar,
		DietaryFiber:       in.DietaryFiber,
		Sodium:             in.Sodium,
		Potassium:          in.Potassium,
	}
	if err := foods.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Get(ctx context.Context, foods repositories.FoodRepository, id string) (*models.Food, error) {
	if err := checkID("food", id); err != nil {
		return nil, err
	}
	return foods.Get(ctx, id)
}

func (s *FoodService) List(ctx context.Context, foods repositories.FoodRepository, filter repositories.FoodFilter) ([]models.Food, error) {
	if filter.Limit <= 0 {
		filter.Limit = repositories.DefaultFoodPageSize
	}
	if filter.Limit > MaxFoodPageSize {
		filter.Limit = MaxFoodPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return foods.List(ctx, filter)
}

func (s *FoodService) Update(ctx context.Context, foods repositories.FoodRepository, id string, patch FoodPatch) (*models.Food, error) {
	food, err := s.Get(ctx, foods, id)
	if err != nil {
		return nil, err
	}
	patch.apply(food)
	if err := foods.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

// Delete removes a food. Foods still used by a meal item are kept.
func (s *FoodService) Delete(ctx context.Context, foods repositories.FoodRepository, id string) error {
	if err := checkID("food", id); err != nil {
		return err
	}
	err := foods.Delete(ctx, id)
	if errors.Is(err, repositories.ErrReferenced) {
		return fmt.Errorf("%w: food %s is used by meal items", utils.ErrInvalidRequestPayload, id)
	}
	return err
}
