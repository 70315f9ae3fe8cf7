package structs

type EnviromentModel struct {
	App      app
	Router   router
	Cors     cors
	Database database
	JWT      jwt
	Media    media
	S3       s3
	Model    model
	Seed     seed
	RabbitMQ rabbitmq
	Log      log
	Email    email
}

type app struct {
	Name string
}

type router struct {
	Port   int
	Prefix string
	Mode   string
}

type cors struct {
	AllowOrigins []string
}

type database struct {
	Client      string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	LogEnable   int
}

type jwt struct {
	Secret        string
	ExpireMinutes int
}

type media struct {
	Dir    string
	Driver string
}

type s3 struct {
	Bucket string
	Region string
	Prefix string
}

type model struct {
	Dir string
}

type seed struct {
	NutritionFile string
}

type rabbitmq struct {
	Enable int
	Domain string
	Queue  string
}

type log struct {
	Dir            string
	Level          string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
}

type email struct {
	APIUrl string
}
