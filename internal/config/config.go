package config

import (
	"os"
	"strconv"
	"time"

	"processcraft/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	BcryptCost int

	// Request limits
	APIRateLimit       int
	APIRateWindow      time.Duration
	AuthRateLimit      int
	AuthRateWindow     time.Duration
	MutationRateLimit  int
	MutationRateWindow time.Duration
}

// Load reads configuration from the environment (.env is honored in
// development). Missing required variables abort startup.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		BcryptCost: envInt("BCRYPT_COST", 10),

		APIRateLimit:       envInt("API_RATE_LIMIT", 60),
		APIRateWindow:      envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:      envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:     envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		MutationRateLimit:  envInt("MUTATION_RATE_LIMIT", 120),
		MutationRateWindow: envSeconds("MUTATION_RATE_WINDOW_SECONDS", time.Minute),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
