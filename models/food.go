package models

// Food holds nutrition facts for one unit (one serving of Weight grams).
// Foods are shared catalog entries, not owned by a user.
type Food struct {
	Base
	Name     string  `gorm:"not null;index"`
	Weight   float64 `gorm:"not null;default:0"`
	Calories float64 `gorm:"not null"`
	Protein  float64 `gorm:"not null"`
	Fat      float64 `gorm:"not null"`
	Carbs    float64 `gorm:"not null"`

	TransFat           float64 `gorm:"not null;default:0"`
	SaturatedFat       float64 `gorm:"not null;default:0"`
	MonounsaturatedFat float64 `gorm:"not null;default:0"`
	PolyunsaturatedFat float64 `gorm:"not null;default:0"`
	Sugar              float64 `gorm:"not null;default:0"`
	DietaryFiber       float64 `gorm:"not null;default:0"`
	Sodium             float64 `gorm:"not null;default:0"` // mg
	Potassium          float64 `gorm:"not null;default:0"` // mg
}
