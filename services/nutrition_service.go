package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// FoodIntake is one food's per-unit values and how many units were eaten.
type FoodIntake struct {
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Intake   float64
}

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// AggregateNutrition sums metric*intake over all entries. No rounding.
func AggregateNutrition(entries []FoodIntake) NutritionTotals {
	var t NutritionTotals
	for _, e := range entries {
		t.Calories += e.Calories * e.Intake
		t.Protein += e.Protein * e.Intake
		t.Fat += e.Fat * e.Intake
		t.Carbs += e.Carbs * e.Intake
	}
	return t
}

// IntakeOf pairs an item's food values with its intake.
func IntakeOf(item models.MealItem) FoodIntake {
	return FoodIntake{
		Calories: item.Food.Calories,
		Protein:  item.Food.Protein,
		Fat:      item.Food.Fat,
		Carbs:    item.Food.Carbs,
		Intake:   item.Intake,
	}
}

// DayWindow returns [local midnight of day, next local midnight) in loc.
// AddDate keeps the bound right on days that are not 24h long.
func DayWindow(day time.Time, loc *time.Location) (start, end time.Time) {
	d := day.In(loc)
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD date as local midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", utils.ErrInvalidRequestPayload, s, err)
	}
	return t, nil
}

type NutritionService struct {
	loc *time.Location
}

func NewNutritionService(loc *time.Location) *NutritionService {
	if loc == nil {
		loc = time.Local
	}
	return &NutritionService{loc: loc}
}

func (s *NutritionService) Location() *time.Location { return s.loc }

// Overview totals every meal item the user logged on day.
func (s *NutritionService) Overview(ctx context.Context, meals repositories.MealRepository, userID string, day time.Time) (NutritionTotals, error) {
	start, end := DayWindow(day, s.loc)
	items, err := meals.ItemsInRange(ctx, userID, start, end)
	if err != nil {
		return NutritionTotals{}, err
	}
	entries := make([]FoodIntake, 0, len(items))
	for _, it := range items {
		entries = append(entries, IntakeOf(it))
	}
	return AggregateNutrition(entries), nil
}
