package models

type User struct {
	Base
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"` // bcrypt hash
	Name      string `gorm:"not null;default:''"`
	AvatarURL string
}
