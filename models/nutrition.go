package models

import "time"

// Nutrition is one row of the per-100g reference table.
type Nutrition struct {
	ID              int64     `gorm:"column:id;primary_key" json:"-"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	NameKey         string    `gorm:"column:name_key;unique_index;not null" json:"-"`
	CaloriesPer100g float64   `gorm:"column:calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64   `gorm:"column:protein_per_100g" json:"protein_per_100g"`
	FatPer100g      float64   `gorm:"column:fat_per_100g" json:"fat_per_100g"`
	CarbsPer100g    float64   `gorm:"column:carbs_per_100g" json:"carbs_per_100g"`
	Extras          JSONMap   `gorm:"column:extras;type:text" json:"extras"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"-"`
}

// TableName sets the insert table name for this struct type
func (n *Nutrition) TableName() string {
	return "nutritions"
}
