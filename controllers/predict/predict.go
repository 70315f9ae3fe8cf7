package predict

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/enums"
	"diet-tracker-backend/middlewares"
	predictService "diet-tracker-backend/services/predict"
	"diet-tracker-backend/structs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PredictController struct {
	app *app.App
}

func NewPredictController(a *app.App) *PredictController {
	return &PredictController{app: a}
}

// Image stores the uploaded photo, runs detection and logs the detected items as a meal.
func (p *PredictController) Image(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, structs.ErrorResponse{Error: "Not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: "file is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: err.Error()})
		return
	}
	defer src.Close()

	imagePath, err := p.app.Uploads.Save(fileHeader.Filename, src)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}

	response := structs.PredictResponse{}
	if p.app.Mirror != nil {
		imageURL, err := p.app.Mirror.Mirror(c.Request.Context(), imagePath)
		if err != nil {
			p.app.Logger.WithFields(logrus.Fields{"task": "predict", "path": imagePath}).Error(err.Error())
		} else {
			response.ImageURL = imageURL
		}
	}

	detections, err := p.app.Model.PredictFromPath(imagePath)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}

	mealEntity, err := p.app.Meals.CreateMeal(userID, predictService.MealItems(detections))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}

	response.Detections = detections
	response.Meal = structs.PredictMealSummary{ID: mealEntity.ID, TotalCalories: mealEntity.TotalCalories}
	c.JSON(http.StatusOK, response)
}
