package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fitdiary/backend/models"
)

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) FindByKey(ctx context.Context, key MealKey) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Food").
		Where("user_id = ? AND date = ? AND meal_type = ?", key.UserID, key.Date, key.MealType).
		First(&meal).Error
	if err != nil {
		return nil, translate(err, "find meal")
	}
	return &meal, nil
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(meal).Error, "create meal")
}

func (r *mealRepository) ItemsInRange(ctx context.Context, userID string, from, to time.Time) ([]models.MealItem, error) {
	var items []models.MealItem
	err := r.db.WithContext(ctx).
		Joins("JOIN meals ON meals.id = meal_items.meal_id").
		Where("meals.user_id = ? AND meals.date >= ? AND meals.date < ?", userID, from, to).
		Preload("Food").
		Preload("Meal").
		Order("meals.date ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list meal items")
	}
	return items, nil
}

func (r *mealRepository) AddItem(ctx context.Context, item *models.MealItem) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error, "add meal item")
}

func (r *mealRepository) DeleteItem(ctx context.Context, userID, itemID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND meal_id IN (?)", itemID,
			r.db.Model(&models.Meal{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.MealItem{})
	if res.Error != nil {
		return translate(res.Error, "delete meal item "+itemID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete meal item "+itemID)
	}
	return nil
}
