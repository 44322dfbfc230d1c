package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is intentionally empty: every field names its variable in full.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BRICKSHARE_DB_DSN"
	EnvDBHost = "BRICKSHARE_DB_HOST"
	EnvDBUser = "BRICKSHARE_DB_USER"
	EnvDBName = "BRICKSHARE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Stripe       StripeConfig
	Correos      CorreosConfig
	Rebrickable  RebrickableConfig
	Mailtrap     MailtrapConfig
	Eventing     EventingConfig
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
	Env          string `envconfig:"BRICKSHARE_APP_ENV" required:"true"`
	Port         string `envconfig:"BRICKSHARE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BRICKSHARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRICKSHARE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRICKSHARE_DB_DSN"`
	Driver string `envconfig:"BRICKSHARE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BRICKSHARE_DB_HOST"`
	LegacyPort     int    `envconfig:"BRICKSHARE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRICKSHARE_DB_USER"`
	LegacyPassword string `envconfig:"BRICKSHARE_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRICKSHARE_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRICKSHARE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRICKSHARE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRICKSHARE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRICKSHARE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRICKSHARE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BRICKSHARE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BRICKSHARE_REDIS_ADDR"`
	Password     string        `envconfig:"BRICKSHARE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRICKSHARE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRICKSHARE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRICKSHARE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRICKSHARE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRICKSHARE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRICKSHARE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BRICKSHARE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BRICKSHARE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BRICKSHARE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BRICKSHARE_AUTO_MIGRATE" default:"false"`
}

type EventingConfig struct {
	WebhookIdempotencyTTL time.Duration `envconfig:"BRICKSHARE_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

type StripeConfig struct {
	APIKey        string `envconfig:"BRICKSHARE_STRIPE_API_KEY"`
	WebhookSecret string `envconfig:"BRICKSHARE_STRIPE_WEBHOOK_SECRET"`
	SuccessURL    string `envconfig:"BRICKSHARE_STRIPE_SUCCESS_URL" default:"https://brickshare.es/dashboard?subscription=success"`
	CancelURL     string `envconfig:"BRICKSHARE_STRIPE_CANCEL_URL" default:"https://brickshare.es/como-funciona?subscription=cancelled"`
}

type CorreosConfig struct {
	ClientID     string `envconfig:"BRICKSHARE_CORREOS_CLIENT_ID"`
	ClientSecret string `envconfig:"BRICKSHARE_CORREOS_CLIENT_SECRET"`
	ContractID   string `envconfig:"BRICKSHARE_CORREOS_CONTRACT_ID"`
	BaseURL      string `envconfig:"BRICKSHARE_CORREOS_BASE_URL" default:"https://api-pre.correos.es"`
	AuthURL      string `envconfig:"BRICKSHARE_CORREOS_AUTH_URL" default:"https://apioauthcid.correos.es/Api/Authorize/Token"`
	Scope        string `envconfig:"BRICKSHARE_CORREOS_SCOPE" default:"Preregistro"`
}

type RebrickableConfig struct {
	APIKey  string `envconfig:"BRICKSHARE_REBRICKABLE_API_KEY"`
	BaseURL string `envconfig:"BRICKSHARE_REBRICKABLE_BASE_URL" default:"https://rebrickable.com/api/v3"`
}

type MailtrapConfig struct {
	APIToken  string `envconfig:"BRICKSHARE_MAILTRAP_API_TOKEN"`
	BaseURL   string `envconfig:"BRICKSHARE_MAILTRAP_BASE_URL" default:"https://send.api.mailtrap.io"`
	FromEmail string `envconfig:"BRICKSHARE_MAILTRAP_FROM_EMAIL" default:"info@brickshare.es"`
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
