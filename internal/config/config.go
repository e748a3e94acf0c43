package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Logger LoggerConfig
	Auth   AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// MongoConfig holds database connection values.
type MongoConfig struct {
	URI               string
	Database          string
	ConnectTimeoutSec int
	EnsureIndexes     bool
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
//
// JWTSecret and the admin credentials fall back to the historical hardcoded
// values when the environment leaves them unset. Integrators should treat
// the fallbacks as a known weakness and override them in deployment.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLDays  int
	BcryptCost    int
	CookieName    string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "brandoverts-api"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Mongo: MongoConfig{
			URI:               getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			Database:          getEnv("MONGODB_DATABASE", "brandoverts"),
			ConnectTimeoutSec: getEnvAsInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10),
			EnsureIndexes:     getEnvAsBool("MONGODB_ENSURE_INDEXES", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "brandoverts-leads-secret-key"),
			TokenTTLDays:  getEnvAsInt("AUTH_TOKEN_TTL_DAYS", 7),
			BcryptCost:    getEnvAsInt("AUTH_BCRYPT_COST", 10),
			CookieName:    getEnv("AUTH_COOKIE_NAME", "brandoverts-auth-token"),
			AdminUsername: getEnv("ADMIN_USERNAME", "BrandovertsAdmin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "BrandovertsToFinovert123$#@"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs in production mode.
// The session cookie is marked Secure only in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// ConnectTimeout returns the Mongo connect timeout duration.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.ConnectTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.ConnectTimeoutSec) * time.Second
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	days := a.TokenTTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
