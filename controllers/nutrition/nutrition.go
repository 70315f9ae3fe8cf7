package nutrition

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/enums"
	nutritionService "diet-tracker-backend/services/nutrition"
	"diet-tracker-backend/structs"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultGrams = 100.0

type NutritionController struct {
	app *app.App
}

func NewNutritionController(a *app.App) *NutritionController {
	return &NutritionController{app: a}
}

func (n *NutritionController) Item(c *gin.Context) {
	rec, err := n.app.Nutrition.FindByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, nutritionService.ErrNotFound) {
			c.JSON(http.StatusNotFound, structs.ErrorResponse{Error: "Nutrition entry not found"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Estimate scales the named food to ?grams (100 by default). Unknown foods return zeros.
func (n *NutritionController) Estimate(c *gin.Context) {
	grams := defaultGrams
	if raw := c.Query("grams"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: "grams must be a number"})
			return
		}
		if parsed < 0 {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: "grams must not be negative"})
			return
		}
		if parsed > enums.MaxGrams {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: fmt.Sprintf("grams must not exceed %g", enums.MaxGrams)})
			return
		}
		grams = parsed
	}

	breakdown, err := n.app.Nutrition.Scale(c.Param("name"), grams)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
