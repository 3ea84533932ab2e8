package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port   string
	AppEnv string
}

type PostgresConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN prefers the single DATABASE_URL form and falls back to discrete vars.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type StripeConfig struct {
	SecretKey  string
	Currency   string
	SuccessURL string
	CancelURL  string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:   getEnv("PORT", "8080"),
			AppEnv: getEnv("APP_ENV", "development"),
		},
		Postgres: PostgresConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "digitalstore"),
			Password: getEnv("DB_PASSWORD", "digitalstore"),
			DBName:   getEnv("DB_NAME", "digitalstore"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Stripe: StripeConfig{
			SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
			Currency:   getEnv("STRIPE_CURRENCY", "usd"),
			SuccessURL: getEnv("STRIPE_SUCCESS_URL", "http://localhost:8080/checkout/success"),
			CancelURL:  getEnv("STRIPE_CANCEL_URL", "http://localhost:8080/checkout/cancel"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
