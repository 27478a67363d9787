// Package config loads the bot configuration from the environment.
package config

import (
	"fmt"
	"log"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full configuration surface. Missing transport
// credentials or an empty authorized-user list abort startup; core
// behavior does not depend on the environment mode beyond transport
// selection (webhook vs. long polling).
type Config struct {
	TelegramToken   string  `env:"TELEGRAM_TOKEN" validate:"required"`
	AuthorizedUsers []int64 `env:"AUTHORIZED_USERS" validate:"required,min=1"`

	// BotUsername is the optional "@name" suffix Telegram appends to
	// commands addressed to this bot in group chats.
	BotUsername    string `env:"BOT_USERNAME"`
	WeatherCommand string `env:"WEATHER_COMMAND" envDefault:"w"`

	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production"`
	AppURL      string `env:"APP_URL" validate:"required_if=Environment production,omitempty,url"`
	Port        string `env:"PORT" envDefault:"8080"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// GeocoderAPIKey enables the Google resolver; without it the
	// keyless Open-Meteo geocoding API is used.
	GeocoderAPIKey string `env:"GEOCODER_API_KEY"`

	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	CallTimeout   time.Duration `env:"CALL_TIMEOUT" envDefault:"15s"`
	ProbeInterval time.Duration `env:"STORE_PROBE_INTERVAL" envDefault:"5m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Production reports whether the bot should run in webhook mode.
func (c *Config) Production() bool {
	return c.Environment == EnvProduction
}
