package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by every PRINTY_* variable.
const EnvPrefix = "printy"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "PRINTY_APP_ENV"
	EnvPort       = "PRINTY_APP_PORT"
	EnvDBDSN      = "PRINTY_DB_DSN"
	EnvDBHost     = "PRINTY_DB_HOST"
	EnvDBUser     = "PRINTY_DB_USER"
	EnvDBName     = "PRINTY_DB_NAME"
	EnvRedisURL   = "PRINTY_REDIS_URL"
	EnvJWTSecret  = "PRINTY_JWT_SECRET"
	EnvJWTIssuer  = "PRINTY_JWT_ISSUER"
	EnvJWTExpMins = "PRINTY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"PRINTY_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRINTY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTY_DB_DSN"`
	Driver string `envconfig:"PRINTY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRINTY_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTY_DB_USER"`
	LegacyPassword string `envconfig:"PRINTY_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTY_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRINTY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRINTY_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTY_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PRINTY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PRINTY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PRINTY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PRINTY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PRINTY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PRINTY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PRINTY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PRINTY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PRINTY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PRINTY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PRINTY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PRINTY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PRINTY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PRINTY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PRINTY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRINTY_AUTO_MIGRATE" default:"false"`
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
