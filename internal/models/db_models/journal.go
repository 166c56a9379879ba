package db_models

import (
	"time"

	"github.com/google/uuid"
)

type DiaryEntry struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_diary_user_date,priority:1" json:"user_id"`
	EntryDate time.Time `gorm:"type:date;not null;index:idx_diary_user_date,priority:2" json:"entry_date"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      *int      `json:"mood,omitempty"`
}

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

func IsValidMeal(meal string) bool {
	switch meal {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type DietLog struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_diet_user_date,priority:1" json:"user_id"`
	LogDate     time.Time `gorm:"type:date;not null;index:idx_diet_user_date,priority:2" json:"log_date"`
	Meal        string    `gorm:"type:varchar(16);not null" json:"meal"`
	Description string    `gorm:"type:text" json:"description"`
	Calories    *int      `json:"calories,omitempty"`
	ProteinG    *float64  `json:"protein_g,omitempty"`
	CarbsG      *float64  `json:"carbs_g,omitempty"`
	FatG        *float64  `json:"fat_g,omitempty"`
}
