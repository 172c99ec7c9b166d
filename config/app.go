package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrMissingJWTSecret is returned by Build when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is not set")

// App is the immutable runtime configuration assembled once at startup and
// passed by reference to the components that need it.
type App struct {
	Env  string
	Port string

	DatabaseDriver string
	DatabaseDSN    string

	RedisAddr     string
	RedisPassword string

	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int

	MaxBodyBytes   int64
	MaxUploadBytes int64

	RateLimitRPS   float64
	RateLimitBurst int

	LogMongoURI        string
	LogMongoDB         string
	LogMongoCollection string
}

// Production reports whether the app runs with APP_ENV=production|prod.
func (a *App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Addr is the listen address for the HTTP server.
func (a *App) Addr() string {
	return ":" + a.Port
}

// Build loads the config files and assembles an App. It fails when
// JWT_SECRET is empty or a numeric setting does not parse or is out of range.
func Build() (*App, error) {
	if err := Load(); err != nil {
		return nil, err
	}

	secret := get("JWT_SECRET", "")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	ttl, err := time.ParseDuration(get("JWT_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("config: JWT_TTL: %w", err)
	}

	cost, err := strconv.Atoi(get("BCRYPT_COST", "8"))
	if err != nil {
		return nil, fmt.Errorf("config: BCRYPT_COST: %w", err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("config: BCRYPT_COST %d outside %d..%d", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	maxBody, err := strconv.ParseInt(get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: MAX_BODY_BYTES: %w", err)
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", maxBody)
	}

	maxUpload, err := strconv.ParseInt(get("MAX_UPLOAD_BYTES", "5242880"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: MAX_UPLOAD_BYTES: %w", err)
	}

	rps, err := strconv.ParseFloat(get("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(get("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT_BURST: %w", err)
	}

	return &App{
		Env:                AppEnv(),
		Port:               AppPort(),
		DatabaseDriver:     DatabaseDriver(),
		DatabaseDSN:        DatabaseDSN(),
		RedisAddr:          RedisAddr(),
		RedisPassword:      RedisPassword(),
		JWTSecret:          []byte(secret),
		TokenTTL:           ttl,
		BcryptCost:         cost,
		MaxBodyBytes:       maxBody,
		MaxUploadBytes:     maxUpload,
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		LogMongoURI:        get("LOG_MONGO_URI", ""),
		LogMongoDB:         get("LOG_MONGO_DB", "pizzeria"),
		LogMongoCollection: get("LOG_MONGO_COLLECTION", "logs"),
	}, nil
}
