package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SOUQLINE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SOUQLINE_DB_DSN"
	EnvDBHost = "SOUQLINE_DB_HOST"
	EnvDBUser = "SOUQLINE_DB_USER"
	EnvDBName = "SOUQLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Catalog      CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOUQLINE_APP_ENV" default:"dev"`
	Port         string `envconfig:"SOUQLINE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOUQLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOUQLINE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SOUQLINE_CORS_ORIGINS" default:"http://localhost:3000,https://souqline.vercel.app"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOUQLINE_DB_DSN"`
	Driver string `envconfig:"SOUQLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOUQLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"SOUQLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOUQLINE_DB_USER"`
	LegacyPassword string `envconfig:"SOUQLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOUQLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOUQLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOUQLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOUQLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOUQLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOUQLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOUQLINE_REDIS_URL"`
	Address      string        `envconfig:"SOUQLINE_REDIS_ADDR"`
	Password     string        `envconfig:"SOUQLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOUQLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOUQLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOUQLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOUQLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOUQLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOUQLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SOUQLINE_JWT_SECRET"`
	Issuer            string `envconfig:"SOUQLINE_JWT_ISSUER" default:"souqline"`
	ExpirationMinutes int    `envconfig:"SOUQLINE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOUQLINE_AUTO_MIGRATE" default:"false"`
}

// CatalogConfig carries the storefront defaults applied during grouping and
// product creation. The localized placeholder strings match the legacy store
// data and are deliberately configuration, not constants.
type CatalogConfig struct {
	PlaceholderImageURL string        `envconfig:"SOUQLINE_CATALOG_PLACEHOLDER_IMAGE" default:"https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=500"`
	DefaultColor        string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_COLOR" default:"افتراضي"`
	DefaultSize         string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_SIZE" default:"ONE SIZE"`
	DefaultGroupName    string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_GROUP" default:"عام"`
	DefaultKindName     string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_KIND" default:"عام"`
	DefaultUnitName     string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_UNIT" default:"قطعة"`
	DefaultPlaceName    string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_PLACE" default:"المخزن الرئيسي"`
	DefaultDescription  string        `envconfig:"SOUQLINE_CATALOG_DEFAULT_DESCRIPTION" default:"منتج بدون وصف"`
	DefaultPageSize     int           `envconfig:"SOUQLINE_CATALOG_DEFAULT_PAGE_SIZE" default:"20"`
	CategoryCacheTTL    time.Duration `envconfig:"SOUQLINE_CATALOG_CATEGORY_CACHE_TTL" default:"5m"`
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
