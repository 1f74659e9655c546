package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SWIFTCART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OTP          OTPConfig
	Gateway      GatewayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWIFTCART_APP_ENV" default:"development"`
	Port         string `envconfig:"SWIFTCART_APP_PORT" default:"5000"`
	PublicURL    string `envconfig:"SWIFTCART_PUBLIC_URL" default:"http://localhost:5000"`
	LogLevel     string `envconfig:"SWIFTCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWIFTCART_DB_DSN"`
	Driver string `envconfig:"SWIFTCART_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SWIFTCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWIFTCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWIFTCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTCART_REDIS_URL"`
	Address      string        `envconfig:"SWIFTCART_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWIFTCART_JWT_SECRET"`
	Issuer            string `envconfig:"SWIFTCART_JWT_ISSUER" default:"swiftcart"`
	ExpirationMinutes int    `envconfig:"SWIFTCART_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type OTPConfig struct {
	TTL      time.Duration `envconfig:"SWIFTCART_OTP_TTL" default:"5m"`
	DemoCode string        `envconfig:"SWIFTCART_OTP_DEMO_CODE" default:"1234"`
	// LiveDelivery gates real SMS/email delivery. Off means the code is
	// returned to the caller as devCode.
	LiveDelivery bool `envconfig:"SWIFTCART_OTP_LIVE_DELIVERY" default:"false"`
}

type GatewayConfig struct {
	AppID     string        `envconfig:"SWIFTCART_CASHFREE_APP_ID"`
	SecretKey string        `envconfig:"SWIFTCART_CASHFREE_SECRET_KEY"`
	Env       string        `envconfig:"SWIFTCART_CASHFREE_ENV" default:"TEST"`
	Timeout   time.Duration `envconfig:"SWIFTCART_CASHFREE_TIMEOUT" default:"10s"`
}

// Configured reports whether real gateway credentials are present.
func (g GatewayConfig) Configured() bool {
	return strings.TrimSpace(g.AppID) != "" && strings.TrimSpace(g.SecretKey) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SWIFTCART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SWIFTCART_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"SWIFTCART_SEED_CATALOG" default:"false"`
}
