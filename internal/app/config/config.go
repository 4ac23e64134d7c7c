package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Amadeus  Amadeus    `mapstructure:",squash"`
}

type HTTP struct {
	Port         int           `mapstructure:"HTTP_PORT"`
	Timeout      time.Duration `mapstructure:"HTTP_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"HTTP_RATE_LIMIT"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// Amadeus holds the upstream flight API configuration. The token URL is
// separate from the versioned base URLs because the sandbox and
// production environments host them differently.
type Amadeus struct {
	BaseURLV1    string        `mapstructure:"AMADEUS_BASE_URL_V1"`
	BaseURLV2    string        `mapstructure:"AMADEUS_BASE_URL_V2"`
	TokenURL     string        `mapstructure:"AMADEUS_TOKEN_URL"`
	ClientID     string        `mapstructure:"AMADEUS_CLIENT_ID"`
	ClientSecret string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	Timeout      time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	MaxOffers    int           `mapstructure:"AMADEUS_MAX_OFFERS"`
	MaxPrice     int           `mapstructure:"AMADEUS_MAX_PRICE"`
}
