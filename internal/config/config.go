package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DevJWTSecret is the signing secret used when JWT_SECRET is not set.
// It is refused in production.
const DevJWTSecret = "dev-only-jwt-secret"

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds the runtime configuration of the service.
type Config struct {
	AppPort  string
	AppEnv   string // "development" or "production"
	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	DBDriver      string
	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string

	// RabbitMQURL enables catalog events when set.
	RabbitMQURL string

	AuthRatePerMinute int
	AuthRateBurst     int
	BcryptCost        int

	// LegacyLoginFailure answers failed logins with 200 "Login failed" instead of 401.
	LegacyLoginFailure bool
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the configuration from an optional config file in the working
// directory and from environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from v after applying defaults and environment bindings.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:tokobaju.db?cache=shared")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "ShoppingStore")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_RATE_PER_MINUTE", 10)
	v.SetDefault("AUTH_RATE_BURST", 5)
	v.SetDefault("BCRYPT_COST", 0)
	v.SetDefault("LEGACY_LOGIN_FAILURE", false)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:            v.GetString("APP_PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		DBDriver:           v.GetString("DB_DRIVER"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DATABASE"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		AuthRatePerMinute:  v.GetInt("AUTH_RATE_PER_MINUTE"),
		AuthRateBurst:      v.GetInt("AUTH_RATE_BURST"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		LegacyLoginFailure: v.GetBool("LEGACY_LOGIN_FAILURE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.AuthRatePerMinute <= 0 || c.AuthRateBurst <= 0 {
		return errors.New("AUTH_RATE_PER_MINUTE and AUTH_RATE_BURST must be positive")
	}
	// 0 selects bcrypt.DefaultCost
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("BCRYPT_COST must be 0 or between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}
