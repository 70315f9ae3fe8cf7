package enums

const (
	TokenTypeBearer = "bearer"

	DatabaseMysql    = "mysql"
	DatabasePostgres = "postgres"
	DatabaseSqlite   = "sqlite3"

	MediaLocal = "local"
	MediaS3    = "s3"

	MealLoggedQueue = "meal-logged"

	LogMealCreated    = "meal.created"
	LogUserRegistered = "user.registered"

	ContextUserID = "userID"
	ContextEmail  = "email"

	DayLayout = "2006-01-02"

	// MaxGrams bounds a single item; keep in sync with MealItemParam.Grams.
	MaxGrams = 100000.0

	InternalErrorMessage = "Internal server error"
)
