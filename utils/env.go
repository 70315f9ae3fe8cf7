package utils

import (
	"diet-tracker-backend/enums"
	"diet-tracker-backend/structs"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct {
	// ConfigPath overrides the directory searched for config.yml.
	ConfigPath string
}

func (e *EnvService) InitEnv() *structs.EnviromentModel {
	e.loadDotEnv()
	e.setDefaults()
	e.loadConfig()
	return e.configToModel()
}

// .env is optional; missing file is not an error.
func (e *EnvService) loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Println("load .env:", err.Error())
		}
	}
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("app.name", "diet-tracker-backend")
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("router.prefix", "/api")
	viper.SetDefault("router.mode", "release")
	viper.SetDefault("cors.allow_origins", []string{"*"})
	viper.SetDefault("database.client", enums.DatabaseSqlite)
	viper.SetDefault("database.name", "./dev.db")
	viper.SetDefault("database.max_idle", 10)
	viper.SetDefault("database.max_open_conn", 100)
	viper.SetDefault("database.max_life_time", "1h")
	viper.SetDefault("jwt.expire_minutes", 60*24*7)
	viper.SetDefault("media.dir", "./media")
	viper.SetDefault("media.driver", enums.MediaLocal)
	viper.SetDefault("model.dir", "../ai-models/inference/models")
	viper.SetDefault("rabbitmq.queue", enums.MealLoggedQueue)
	viper.SetDefault("log.dir", "./logs")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.elk.index", "diet-tracker")
}

func (e *EnvService) loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	if e.ConfigPath != "" {
		viper.AddConfigPath(e.ConfigPath)
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {

			// no config.yml, fall back to environment variables (database.host -> DATABASE_HOST)
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {

			// config.yml exists but could not be read
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) configToModel() *structs.EnviromentModel {
	var config structs.EnviromentModel
	config.App.Name = viper.GetString("app.name")
	config.Router.Port = viper.GetInt("router.port")
	config.Router.Prefix = viper.GetString("router.prefix")
	config.Router.Mode = viper.GetString("router.mode")
	config.Cors.AllowOrigins = viper.GetStringSlice("cors.allow_origins")
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.JWT.Secret = viper.GetString("jwt.secret")
	config.JWT.ExpireMinutes = viper.GetInt("jwt.expire_minutes")
	config.Media.Dir = viper.GetString("media.dir")
	config.Media.Driver = viper.GetString("media.driver")
	config.S3.Bucket = viper.GetString("s3.bucket")
	config.S3.Region = viper.GetString("s3.region")
	config.S3.Prefix = viper.GetString("s3.prefix")
	config.Model.Dir = viper.GetString("model.dir")
	config.Seed.NutritionFile = viper.GetString("seed.nutrition_file")
	config.RabbitMQ.Enable = viper.GetInt("rabbitmq.enable")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Log.Dir = viper.GetString("log.dir")
	config.Log.Level = viper.GetString("log.level")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Email.APIUrl = viper.GetString("email.api_url")
	EnvConfig = &config
	return &config
}
