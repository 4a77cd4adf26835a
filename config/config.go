package config

import "time"

type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type Redis struct {
	// URL like redis://localhost:6379/0. Empty selects the in-memory store.
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:""`
}

type RateProvider struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://ve.dolarapi.com/v1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	Redis        *Redis        `envconfig:"REDIS"`
	RateProvider *RateProvider `envconfig:"RATE_PROVIDER"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
}
