package structs

type RegisterParam struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	FullName string `json:"full_name" form:"full_name"`
}

// TokenParam accepts the OAuth2 password form as well as a JSON body.
type TokenParam struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type MealItemParam struct {
	Name  string  `json:"name" form:"name" binding:"required,foodname"`
	Grams float64 `json:"grams" form:"grams" binding:"gt=0,lte=100000"`
}

type MealParam struct {
	Items []MealItemParam `json:"items" form:"items" binding:"required,dive"`
}
