package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field carries a fully-qualified env tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	JWT           JWTConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	Firebase      FirebaseConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"CREWBASE_APP_ENV" required:"true"`
	Port         string   `envconfig:"CREWBASE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"CREWBASE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"CREWBASE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"CREWBASE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret                 string `envconfig:"CREWBASE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"CREWBASE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"CREWBASE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"CREWBASE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type RedisConfig struct {
	URL          string        `envconfig:"CREWBASE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CREWBASE_REDIS_ADDR"`
	Password     string        `envconfig:"CREWBASE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CREWBASE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CREWBASE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CREWBASE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CREWBASE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CREWBASE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CREWBASE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"CREWBASE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"CREWBASE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// FirebaseConfig covers both the identity store (Firebase Auth) and the
// profile store (Firestore), which share a GCP project.
type FirebaseConfig struct {
	ProjectID         string `envconfig:"CREWBASE_FIREBASE_PROJECT_ID" required:"true"`
	CredentialsFile   string `envconfig:"CREWBASE_FIREBASE_CREDENTIALS_FILE"`
	UsersCollection   string `envconfig:"CREWBASE_FIRESTORE_USERS_COLLECTION" default:"users"`
	InvitesCollection string `envconfig:"CREWBASE_FIRESTORE_INVITES_COLLECTION" default:"invites"`
}
