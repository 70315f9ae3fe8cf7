package structs

import "time"

type ActivityLogJsonModel struct {
	Type    string      `json:"type"`
	UserID  int64       `json:"user_id,omitempty"`
	Result  bool        `json:"result"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MealLoggedEvent is the body published to the meal-logged queue.
type MealLoggedEvent struct {
	Type          string    `json:"type"`
	MealID        int64     `json:"meal_id"`
	UserID        int64     `json:"user_id"`
	ItemCount     int       `json:"item_count"`
	TotalCalories float64   `json:"total_calories"`
	Timestamp     time.Time `json:"timestamp"`
}
