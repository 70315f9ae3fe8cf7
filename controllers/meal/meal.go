package meal

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/enums"
	"diet-tracker-backend/middlewares"
	mealService "diet-tracker-backend/services/meal"
	"diet-tracker-backend/structs"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	app *app.App
}

func NewMealController(a *app.App) *MealController {
	return &MealController{app: a}
}

func (m *MealController) Create(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, structs.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var input structs.MealParam
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: err.Error()})
		return
	}

	mealEntity, err := m.app.Meals.CreateMeal(userID, input.Items)
	if err != nil {
		if errors.Is(err, mealService.ErrInvalidMeal) {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusCreated, mealEntity)
}

// Day lists the current user's meals for ?day=YYYY-MM-DD, today (UTC) by default.
func (m *MealController) Day(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, structs.ErrorResponse{Error: "Not authenticated"})
		return
	}

	day := time.Now().UTC()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse(enums.DayLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: "day must be formatted as YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	meals, err := m.app.Meals.ListMealsByUserAndDay(userID, day)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, meals)
}
