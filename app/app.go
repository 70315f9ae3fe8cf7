package app

import (
	"context"
	"diet-tracker-backend/enums"
	"diet-tracker-backend/services/auth"
	"diet-tracker-backend/services/meal"
	"diet-tracker-backend/services/nutrition"
	"diet-tracker-backend/services/predict"
	"diet-tracker-backend/services/rabbitmq"
	"diet-tracker-backend/services/upload"
	"diet-tracker-backend/services/user"
	"diet-tracker-backend/structs"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// App owns the long-lived resources handed to the request handlers.
type App struct {
	Config    structs.EnviromentModel
	DB        *gorm.DB
	Logger    *logrus.Entry
	Users     *user.UserService
	Tokens    *auth.TokenService
	Nutrition *nutrition.NutritionService
	Meals     *meal.MealService
	Model     *predict.Model
	Uploads   *upload.LocalStore
	Mirror    *upload.S3Mirror
	MQ        *rabbitmq.Connection
}

func New(config structs.EnviromentModel, db *gorm.DB, logger *logrus.Entry) (*App, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	tokens, err := auth.NewTokenService(config.JWT.Secret, config.JWT.ExpireMinutes)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  config,
		DB:      db,
		Logger:  logger,
		Users:   user.NewUserService(db),
		Tokens:  tokens,
		Model:   predict.NewModel(config.Model.Dir),
		Uploads: upload.NewLocalStore(config.Media.Dir),
	}
	a.Nutrition = nutrition.NewNutritionService(db, logger.WithField("service", "nutrition"))
	a.Meals = meal.NewMealService(db, a.Nutrition, logger.WithField("service", "meal"))

	switch config.Media.Driver {
	case "", enums.MediaLocal:
	case enums.MediaS3:
		mirror, err := upload.NewS3Mirror(context.Background(), config.S3.Bucket, config.S3.Region, config.S3.Prefix)
		if err != nil {
			return nil, err
		}
		a.Mirror = mirror
	default:
		return nil, fmt.Errorf("unsupported media.driver %q", config.Media.Driver)
	}

	if config.RabbitMQ.Enable == 1 {
		a.MQ = rabbitmq.NewConnection(config.App.Name, config.RabbitMQ.Domain, []string{config.RabbitMQ.Queue})
		if err := a.MQ.Connect(); err != nil {
			logger.WithField("task", "rabbitmq").Error(err.Error())
		} else if err := a.MQ.BindQueue(); err != nil {
			logger.WithField("task", "rabbitmq").Error(err.Error())
		}
		a.Meals.WithPublisher(a.MQ, config.RabbitMQ.Queue)
	}
	return a, nil
}

// SeedNutrition loads seed.nutrition_file into the reference table when configured.
func (a *App) SeedNutrition() error {
	if a.Config.Seed.NutritionFile == "" {
		return nil
	}
	seeds, err := nutrition.LoadSeedFile(a.Config.Seed.NutritionFile)
	if err != nil {
		return err
	}
	_, err = a.Nutrition.Seed(seeds)
	return err
}

func (a *App) Close() {
	if a.MQ != nil {
		if err := a.MQ.Close(); err != nil {
			a.Logger.WithField("task", "rabbitmq").Error(err.Error())
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.WithField("task", "database").Error(err.Error())
		}
	}
}
