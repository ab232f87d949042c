package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API   APIConfig
	Stub  StubConfig
	Redis RedisConfig
	Auth  AuthConfig
}

// APIConfig describes how the client reaches the booking backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	Breaker bool
}

// StubConfig is the listen address of the development stub backend.
type StubConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout, err := durationEnv("API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid API_TIMEOUT: %w", op, err)
	}

	breaker := false
	if s := os.Getenv("API_BREAKER"); s != "" {
		breaker, err = strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid API_BREAKER: %w", op, err)
		}
	}

	apiCfg := APIConfig{
		BaseURL: baseURL,
		Timeout: timeout,
		Breaker: breaker,
	}

	stubHost := os.Getenv("STUB_HOST")
	if stubHost == "" {
		stubHost = "localhost"
	}

	stubPortStr := os.Getenv("STUB_PORT")
	if stubPortStr == "" {
		stubPortStr = "8080"
	}

	stubPort, err := strconv.Atoi(stubPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid STUB_PORT: %w", op, err)
	}

	stubCfg := StubConfig{
		Host: stubHost,
		Port: stubPort,
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		redisDB, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
		}
	}

	// empty REDIS_ADDR runs the stub without idempotency, rate limiting and caching
	redisCfg := RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret"
	}

	jwtTTL, err := durationEnv("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid JWT_TTL: %w", op, err)
	}

	return &Config{
		API:   apiCfg,
		Stub:  stubCfg,
		Redis: redisCfg,
		Auth: AuthConfig{
			JWTSecret: jwtSecret,
			JWTTTL:    jwtTTL,
		},
	}, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	return time.ParseDuration(s)
}
