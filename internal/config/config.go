// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	PostgresDSN      string        `envconfig:"POSTGRES_DSN" validate:"required"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6380" validate:"required,hostname_port"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`
	JWTSecret        string        `envconfig:"JWT_SECRET" validate:"required,min=16"`
	TokenTTL         time.Duration `envconfig:"TOKEN_TTL" default:"72h" validate:"gt=0"`
	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	HistoryLimit     int           `envconfig:"HISTORY_LIMIT" default:"50" validate:"gt=0"`
	SendBufferSize   int           `envconfig:"SEND_BUFFER_SIZE" default:"256" validate:"gt=0"`
	MaintenanceMode  bool          `envconfig:"MAINTENANCE_MODE" default:"false"`
	AdminToken       string        `envconfig:"ADMIN_TOKEN"`
}

var validate = validator.New()

// Load reads an optional .env file and decodes the environment into Config.
func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether the Telegram transport should start.
func (c Config) TelegramEnabled() bool { return c.TelegramBotToken != "" }
