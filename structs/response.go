package structs

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Detection struct {
	Name           string    `json:"name"`
	Confidence     float64   `json:"confidence"`
	BBox           []float64 `json:"bbox"`
	EstimatedGrams float64   `json:"estimated_grams"`
}

type PredictMealSummary struct {
	ID            int64   `json:"id"`
	TotalCalories float64 `json:"total_calories"`
}

type PredictResponse struct {
	Detections []Detection        `json:"detections"`
	Meal       PredictMealSummary `json:"meal"`
	ImageURL   string             `json:"image_url,omitempty"`
}
