package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Addr     string
	DBDSN    string
	LogLevel string

	SignupRateLimit  int
	SignupRateWindow time.Duration
	TrustProxy       bool
}

// Load reads the optional env file named by APP_ENV_FILE (default .env) into
// the process environment, then builds a Config from the environment.
func Load() (Config, error) {
	path := os.Getenv("APP_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := loadDotEnvFile(path, os.Setenv, os.Getenv); err != nil {
		return Config{}, err
	}
	return LoadFromEnv(os.Getenv)
}

// loadDotEnvFile copies non-empty values from the env file at path without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnvFile(path string, setenv func(string, string) error, getenv func(string) string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for k, v := range values {
		if v == "" || getenv(k) != "" {
			continue
		}
		if err := setenv(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:      getenv("APP_ENV"),
		Addr:     getenv("APP_ADDR"),
		DBDSN:    getenv("APP_DB_DSN"),
		LogLevel: getenv("APP_LOG_LEVEL"),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	limitRaw := getenv("APP_SIGNUP_RATE_LIMIT")
	if limitRaw == "" {
		cfg.SignupRateLimit = 10
	} else {
		n, err := strconv.Atoi(limitRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_SIGNUP_RATE_LIMIT: %w", err)
		}
		if n <= 0 {
			return Config{}, errors.New("APP_SIGNUP_RATE_LIMIT: must be > 0")
		}
		cfg.SignupRateLimit = n
	}

	windowRaw := getenv("APP_SIGNUP_RATE_WINDOW")
	if windowRaw == "" {
		cfg.SignupRateWindow = 5 * time.Minute
	} else {
		d, err := time.ParseDuration(windowRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_SIGNUP_RATE_WINDOW: %w", err)
		}
		if d <= 0 {
			return Config{}, errors.New("APP_SIGNUP_RATE_WINDOW: must be > 0")
		}
		cfg.SignupRateWindow = d
	}

	if raw := getenv("APP_TRUST_PROXY"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_TRUST_PROXY: %w", err)
		}
		cfg.TrustProxy = v
	}

	if cfg.IsProd() && cfg.DBDSN == "" {
		return Config{}, errors.New("APP_DB_DSN: required in prod")
	}

	return cfg, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }
