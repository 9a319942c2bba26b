package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes lists the valid meal slots in display order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// One Meal per user, day and slot. Date is local midnight of the day.
type Meal struct {
	Base
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_meal_user_date_type"`
	User     User      `gorm:"constraint:OnDelete:CASCADE"`
	Date     time.Time `gorm:"not null;uniqueIndex:idx_meal_user_date_type"`
	MealType string    `gorm:"size:16;not null;uniqueIndex:idx_meal_user_date_type"`
	Items    []MealItem
}

// MealItem links a Meal to a Food. Intake scales the food's per-unit values.
type MealItem struct {
	Base
	MealID string  `gorm:"type:uuid;not null;index"`
	Meal   Meal    `gorm:"constraint:OnDelete:CASCADE"`
	FoodID string  `gorm:"type:uuid;not null;index"`
	Food   Food    `gorm:"constraint:OnDelete:RESTRICT"`
	Intake float64 `gorm:"not null"`
}
