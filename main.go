package main

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/database"
	"diet-tracker-backend/router"
	"diet-tracker-backend/services"
	"diet-tracker-backend/services/trackLog"
	"diet-tracker-backend/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type crashAlert struct {
	App     string `json:"app"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

func main() {

	// 初始化 env
	var envService utils.EnvService
	config := envService.InitEnv()
	fmt.Println("config loaded...")

	logger := trackLog.LogTrackInit(*config)
	gin.SetMode(config.Router.Mode)

	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{"task": "main"}).Error(fmt.Sprintf("server crashed: %v", r))
			crashEmailAlert(config.App.Name, fmt.Sprint(r))
		}
		logger.WithFields(logrus.Fields{"task": "main"}).Info("server shutdown")
	}()

	db, err := database.InitDatabasePool(*config)
	if err != nil {
		panic(err)
	}

	application, err := app.New(*config, db, logger)
	if err != nil {
		db.Close()
		panic(err)
	}
	defer application.Close()

	if err := application.SeedNutrition(); err != nil {
		logger.WithFields(logrus.Fields{"task": "seed"}).Error(err.Error())
	}

	route := router.Router(application)
	addr := fmt.Sprintf(":%d", config.Router.Port)
	logger.WithFields(logrus.Fields{"task": "main", "addr": addr}).Info("server listening")
	if err := route.Run(addr); err != nil {
		panic(err)
	}
}

// crashEmailAlert notifies email.api_url, when configured, that the server went down.
func crashEmailAlert(appName, message string) {
	api := utils.EnvConfig.Email.APIUrl
	if api == "" {
		return
	}
	body := crashAlert{App: appName, Message: message, Time: time.Now().UTC().Format(time.RFC3339)}
	if _, err := services.HttpRequest(http.MethodPost, api, nil, body); err != nil {
		trackLog.Error(err.Error())
	}
}
