package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Cart         CartConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string   `envconfig:"SHOPORA_APP_ENV" required:"true"`
	Port         string   `envconfig:"SHOPORA_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"SHOPORA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SHOPORA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SHOPORA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPORA_DB_DSN"`
	Driver string `envconfig:"SHOPORA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SHOPORA_DB_HOST"`
	Port     int    `envconfig:"SHOPORA_DB_PORT" default:"5432"`
	User     string `envconfig:"SHOPORA_DB_USER"`
	Password string `envconfig:"SHOPORA_DB_PASSWORD"`
	Name     string `envconfig:"SHOPORA_DB_NAME"`
	SSLMode  string `envconfig:"SHOPORA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPORA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPORA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPORA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPORA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPORA_REDIS_URL"`
	Address      string        `envconfig:"SHOPORA_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPORA_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPORA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPORA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPORA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPORA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPORA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPORA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the TTL of session-scoped cart/coupon state.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SHOPORA_SESSION_TTL" default:"72h"`
}

// CartConfig carries the flat tax rate applied by the cart subsystem. The
// pricing engine treats the resulting tax amount as opaque.
type CartConfig struct {
	TaxPercent string `envconfig:"SHOPORA_CART_TAX_PERCENT" default:"0"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPORA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOPORA_JWT_ISSUER" default:"shopora"`
	ExpirationMinutes int    `envconfig:"SHOPORA_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPORA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPORA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPORA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPORA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPORA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHOPORA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHOPORA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for _, pair := range []struct {
		env   string
		value string
	}{
		{"SHOPORA_DB_HOST", db.Host},
		{"SHOPORA_DB_USER", db.User},
		{"SHOPORA_DB_NAME", db.Name},
	} {
		if pair.value == "" {
			missing = append(missing, pair.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SHOPORA_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
