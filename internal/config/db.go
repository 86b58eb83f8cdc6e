package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string // mysql, postgres or sqlite
	Extras   string // appended to the DSN as is
	Host     string
	Port     int
	User     string
	Password string `json:"-" toml:"-"`
	Name     string // database name, or file path for sqlite
}
