package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "cetakin"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CETAKIN_DB_DSN"
	EnvDBHost = "CETAKIN_DB_HOST"
	EnvDBUser = "CETAKIN_DB_USER"
	EnvDBName = "CETAKIN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Uploads      UploadsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CETAKIN_APP_ENV" default:"dev"`
	Port         string `envconfig:"CETAKIN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CETAKIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CETAKIN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CETAKIN_DB_DSN"`
	Driver string `envconfig:"CETAKIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CETAKIN_DB_HOST"`
	LegacyPort     int    `envconfig:"CETAKIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CETAKIN_DB_USER"`
	LegacyPassword string `envconfig:"CETAKIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"CETAKIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"CETAKIN_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"CETAKIN_SQLITE_PATH" default:"cetakin.db"`

	MaxOpenConns    int           `envconfig:"CETAKIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CETAKIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CETAKIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CETAKIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CETAKIN_REDIS_URL"`
	Address      string        `envconfig:"CETAKIN_REDIS_ADDR"`
	Password     string        `envconfig:"CETAKIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"CETAKIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CETAKIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CETAKIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CETAKIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CETAKIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CETAKIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. Idempotency
// protection is skipped when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type UploadsConfig struct {
	Dir           string `envconfig:"CETAKIN_UPLOADS_DIR" default:"storage/uploads"`
	MaxFileSizeMB int    `envconfig:"CETAKIN_UPLOADS_MAX_FILE_MB" default:"5"`
}

// MaxFileSizeBytes returns the per-file upload ceiling in bytes.
func (u UploadsConfig) MaxFileSizeBytes() int64 {
	return int64(u.MaxFileSizeMB) << 20
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CETAKIN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CETAKIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
