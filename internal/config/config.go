package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	BackendURL          string
	BackendTimeout      time.Duration
	RedisURL            string
	DatabaseDSN         string
	LivePollInterval    time.Duration
	IntradayInterval    time.Duration
	FrontendURLEndsWith string
	DevPassword         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8090"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	backendURL := viper.GetString("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}

	dsn := viper.GetString("DATABASE_DSN")
	if dsn == "" {
		dsn = "finfinal.db"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		BackendURL:          backendURL,
		BackendTimeout:      durationOr("BACKEND_TIMEOUT", 10*time.Second),
		RedisURL:            viper.GetString("REDIS_URL"),
		DatabaseDSN:         dsn,
		LivePollInterval:    durationOr("LIVE_POLL_INTERVAL", 3*time.Second),
		IntradayInterval:    durationOr("INTRADAY_POLL_INTERVAL", 5*time.Second),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
	}, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
