package controllers

import (
	"time"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/services"
)

// Response bodies. Each endpoint answers with one of these, never a model,
// so storage fields cannot leak.

type idResponse struct {
	ID string `json:"id" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status" validate:"required"`
}

type FoodResponse struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Weight   float64 `json:"weight" validate:"gte=0"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`

	TransFat           float64 `json:"transFat"`
	SaturatedFat       float64 `json:"saturatedFat"`
	MonounsaturatedFat float64 `json:"monounsaturatedFat"`
	PolyunsaturatedFat float64 `json:"polyunsaturatedFat"`
	Sugar              float64 `json:"sugar"`
	DietaryFiber       float64 `json:"dietaryFiber"`
	Sodium             float64 `json:"sodium"`
	Potassium          float64 `json:"potassium"`
}

func newFoodResponse(f *models.Food) FoodResponse {
	return FoodResponse{
		ID:                 f.ID,
		Name:               f.Name,
		Weight:             f.Weight,
		Calories:           f.Calories,
		Protein:            f.Protein,
		Fat:                f.Fat,
		Carbs:              f.Carbs,
		TransFat:           f.TransFat,
		SaturatedFat:       f.SaturatedFat,
		MonounsaturatedFat: f.MonounsaturatedFat,
		PolyunsaturatedFat: f.PolyunsaturatedFat,
		Sugar:              f.Sugar,
		DietaryFiber:       f.DietaryFiber,
		Sodium:             f.Sodium,
		Potassium:          f.Potassium,
	}
}

type foodListResponse struct {
	Foods []FoodResponse `json:"foods" validate:"dive"`
}

type nutritionResponse struct {
	Nutrition services.NutritionTotals `json:"nutrition"`
}

// MealItemResponse carries per-unit food values; intake scales them.
type MealItemResponse struct {
	ID       string  `json:"id" validate:"required"`
	FoodID   string  `json:"foodId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Intake   float64 `json:"intake" validate:"gt=0"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
}

type MealResponse struct {
	Date     string             `json:"date" validate:"required"`
	MealType string             `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	Items    []MealItemResponse `json:"items" validate:"dive"`
}

// newMealResponse formats the meal date as a calendar day in loc, whatever
// zone the driver returned it in.
func newMealResponse(m *models.Meal, loc *time.Location) MealResponse {
	items := make([]MealItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, MealItemResponse{
			ID:       it.ID,
			FoodID:   it.FoodID,
			Name:     it.Food.Name,
			Intake:   it.Intake,
			Calories: it.Food.Calories,
			Carbs:    it.Food.Carbs,
			Fat:      it.Food.Fat,
			Protein:  it.Food.Protein,
		})
	}
	return MealResponse{
		Date:     m.Date.In(loc).Format(services.DateLayout),
		MealType: m.MealType,
		Items:    items,
	}
}

type mealItemCreatedResponse struct {
	ID     string `json:"id" validate:"required"`
	MealID string `json:"mealId" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token" validate:"required,jwt"`
}

type ProfileResponse struct {
	ID        string `json:"id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

func newProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL}
}

type emailConfirmedResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token" validate:"required,jwt"`
}
