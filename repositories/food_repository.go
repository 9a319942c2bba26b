package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/fitdiary/backend/models"
)

const DefaultFoodPageSize = 50

type foodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ctx context.Context, food *models.Food) error {
	return translate(r.db.WithContext(ctx).Create(food).Error, "create food")
}

func (r *foodRepository) Get(ctx context.Context, id string) (*models.Food, error) {
	var food models.Food
	if err := r.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get food "+id)
	}
	return &food, nil
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *foodRepository) List(ctx context.Context, filter FoodFilter) ([]models.Food, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultFoodPageSize
	}
	q := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Limit(limit).Offset(filter.Offset)
	if s := strings.TrimSpace(filter.Query); s != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
	}
	var foods []models.Food
	if err := q.Find(&foods).Error; err != nil {
		return nil, translate(err, "list foods")
	}
	return foods, nil
}

func (r *foodRepository) Update(ctx context.Context, food *models.Food) error {
	res := r.db.WithContext(ctx).Model(food).Select("*").Omit("id", "created_at").Updates(food)
	if res.Error != nil {
		return translate(res.Error, "update food "+food.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update food "+food.ID)
	}
	return nil
}

func (r *foodRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Food{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete food "+id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete food "+id)
	}
	return nil
}
