package database

import (
	"diet-tracker-backend/enums"
	"diet-tracker-backend/models"
	"diet-tracker-backend/structs"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// DSN builds the connection string for the configured client.
func DSN(config structs.EnviromentModel) (string, error) {
	db := config.Database
	switch db.Client {
	case enums.DatabaseMysql:
		params := db.Params
		if params == "" {
			params = "charset=utf8mb4&parseTime=True&loc=UTC"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", db.User, db.Password, db.Host, db.Port, db.Db, params), nil
	case enums.DatabasePostgres:
		params := db.Params
		if params == "" {
			params = "sslmode=disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s %s", db.Host, db.Port, db.User, db.Password, db.Db, params), nil
	case enums.DatabaseSqlite:
		return db.Db, nil
	default:
		return "", fmt.Errorf("unsupported database client %q", db.Client)
	}
}

// InitDatabasePool opens the connection pool and applies the pool limits.
func InitDatabasePool(config structs.EnviromentModel) (*gorm.DB, error) {
	dsn, err := DSN(config)
	if err != nil {
		return nil, err
	}
	conn, err := gorm.Open(config.Database.Client, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", config.Database.Client, err)
	}

	if config.Database.MaxIdle > 0 {
		conn.DB().SetMaxIdleConns(int(config.Database.MaxIdle))
	}
	if config.Database.MaxOpenConn > 0 {
		conn.DB().SetMaxOpenConns(int(config.Database.MaxOpenConn))
	}
	if config.Database.MaxLifeTime != "" {
		lifeTime, err := time.ParseDuration(config.Database.MaxLifeTime)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("database.max_life_time: %w", err)
		}
		conn.DB().SetConnMaxLifetime(lifeTime)
	}
	// sqlite in-memory databases are per connection
	if config.Database.Client == enums.DatabaseSqlite {
		conn.DB().SetMaxOpenConns(1)
	}
	conn.LogMode(config.Database.LogEnable == 1)

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate creates the tables for the current models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Nutrition{},
		&models.Meal{},
		&models.ActivityLog{},
	).Error; err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// OpenMemory opens a migrated in-memory sqlite database.
func OpenMemory() (*gorm.DB, error) {
	var config structs.EnviromentModel
	config.Database.Client = enums.DatabaseSqlite
	config.Database.Db = ":memory:"
	return InitDatabasePool(config)
}
