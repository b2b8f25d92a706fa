package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8082"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// DB
	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"booking_db"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"booking.db"`

	// RabbitMQ, empty disables the notification queue
	RabbitURL string `envconfig:"RABBIT_URL"`

	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`

	// Booking
	Timezone      string `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// SMTP, empty host logs mails instead of sending them
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"bookings@localhost"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, errors.New("load config: JWT_SECRET must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
		)
	}
	return c.SQLitePath
}

// Location is the single reference timezone used for weekday derivation and
// the "date in the past" check.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
