package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

// MaxSummaryDays bounds the range of one summary request.
const MaxSummaryDays = 92

type DayTotals struct {
	Date string `json:"date"`
	NutritionTotals
}

type NutritionSummary struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Days    []DayTotals     `json:"days"`
	Average NutritionTotals `json:"average"`

	DaysCounted        int  `json:"daysCounted"`
	IncludeMissingDays bool `json:"includeMissingDays"`
}

type AnalyticsService struct {
	loc *time.Location
}

func NewAnalyticsService(loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{loc: loc}
}

func (s *AnalyticsService) Location() *time.Location { return s.loc }

// Summary totals each calendar day in [from, to] and averages them. Days
// without meal items count only when includeMissing is set.
func (s *AnalyticsService) Summary(
	ctx context.Context, meals repositories.MealRepository, userID string, from, to time.Time, includeMissing bool,
) (*NutritionSummary, error) {
	first, _ := DayWindow(from, s.loc)
	last, end := DayWindow(to, s.loc)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: range ends before it starts", utils.ErrInvalidRequestPayload)
	}
	if n := calendarDays(first, last) + 1; n > MaxSummaryDays {
		return nil, fmt.Errorf("%w: range of %d days exceeds %d", utils.ErrInvalidRequestPayload, n, MaxSummaryDays)
	}

	items, err := meals.ItemsInRange(ctx, userID, first, end)
	if err != nil {
		return nil, err
	}
	byDay := map[string][]FoodIntake{}
	for _, it := range items {
		key := it.Meal.Date.In(s.loc).Format(DateLayout)
		byDay[key] = append(byDay[key], IntakeOf(it))
	}

	out := &NutritionSummary{
		From:               first.Format(DateLayout),
		To:                 last.Format(DateLayout),
		Days:               []DayTotals{},
		IncludeMissingDays: includeMissing,
	}
	var sum NutritionTotals
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		entries, ok := byDay[key]
		if !ok && !includeMissing {
			continue
		}
		t := AggregateNutrition(entries)
		out.Days = append(out.Days, DayTotals{Date: key, NutritionTotals: t})
		sum.Calories += t.Calories
		sum.Protein += t.Protein
		sum.Fat += t.Fat
		sum.Carbs += t.Carbs
	}

	out.DaysCounted = len(out.Days)
	out.Average = NutritionTotals{
		Calories: avg(sum.Calories, out.DaysCounted),
		Protein:  avg(sum.Protein, out.DaysCounted),
		Fat:      avg(sum.Fat, out.DaysCounted),
		Carbs:    avg(sum.Carbs, out.DaysCounted),
	}
	return out, nil
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
