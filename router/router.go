package router

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/controllers/auth"
	"diet-tracker-backend/controllers/check"
	"diet-tracker-backend/controllers/meal"
	"diet-tracker-backend/controllers/nutrition"
	"diet-tracker-backend/controllers/predict"
	"diet-tracker-backend/controllers/readProbe"
	"diet-tracker-backend/middlewares"
	"diet-tracker-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func Router(a *app.App) *gin.Engine {
	utils.RegisterValidations()

	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middlewares.Logger(a.Logger))

	corsConfig := cors.DefaultConfig()
	origins := a.Config.Cors.AllowOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	route.Use(cors.New(corsConfig))

	checkController := check.NewCheckController(a)
	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", checkController.CheckAlive)

	api := route.Group(a.Config.Router.Prefix)

	authController := auth.NewAuthController(a)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/token", authController.Token)
	}

	nutritionController := nutrition.NewNutritionController(a)
	nutritionRoutes := api.Group("/nutrition")
	{
		nutritionRoutes.GET("/item/:name", nutritionController.Item)
		nutritionRoutes.GET("/estimate/:name", nutritionController.Estimate)
	}

	protected := api.Group("/")
	protected.Use(middlewares.AuthMiddleware(a.Tokens, a.Users))
	{
		mealController := meal.NewMealController(a)
		protected.POST("/meals", mealController.Create)
		protected.GET("/meals/day", mealController.Day)

		predictController := predict.NewPredictController(a)
		protected.POST("/predict/image", predictController.Image)
	}

	return route
}
