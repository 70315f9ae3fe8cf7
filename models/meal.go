package models

import (
	"diet-tracker-backend/structs"
	"time"
)

// MealItem is an input item enriched with its nutrition breakdown.
// It only exists inside Meal.Items.
type MealItem struct {
	Name      string                     `json:"name"`
	Grams     float64                    `json:"grams"`
	Nutrition structs.NutritionBreakdown `json:"nutrition"`
}

type Meal struct {
	ID            int64     `gorm:"column:id;primary_key" json:"id"`
	UserID        int64     `gorm:"column:user_id;index;not null" json:"user_id"`
	Timestamp     time.Time `gorm:"column:logged_at;index" json:"timestamp"`
	Items         MealItems `gorm:"column:items;type:text;not null" json:"items"`
	TotalCalories float64   `gorm:"column:total_calories" json:"total_calories"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (m *Meal) TableName() string {
	return "meals"
}
