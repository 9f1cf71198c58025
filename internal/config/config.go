package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string        `toml:"http_port"`
	PlanServicePort    string        `toml:"plan_service_port"`
	DatabasePath       string        `toml:"database_path"`
	RedisAddr          string        `toml:"redis_addr"`
	JWTSecret          string        `toml:"jwt_secret"`
	TokenTTL           time.Duration `toml:"token_ttl"`
	PlanServiceURL     string        `toml:"plan_service_url"`
	PlanCacheTTL       time.Duration `toml:"plan_cache_ttl"`
	RateLimitPerMinute int           `toml:"rate_limit_per_minute"`
	CORSAllowedOrigins []string      `toml:"cors_allowed_origins"`
}

func Default() *Config {
	return &Config{
		HTTPPort:           "8080",
		PlanServicePort:    "8084",
		DatabasePath:       "data/fitness.db",
		TokenTTL:           72 * time.Hour,
		PlanCacheTTL:       10 * time.Minute,
		RateLimitPerMinute: 10,
		CORSAllowedOrigins: []string{"*"},
	}
}

// Load builds the configuration from defaults, the TOML file named by
// FITNESS_CONFIG, a .env file in the working directory and the environment,
// later sources overriding earlier ones.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FITNESS_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.PlanServicePort = getEnv("PLAN_SERVICE_PORT", cfg.PlanServicePort)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.PlanServiceURL = getEnv("PLAN_SERVICE_URL", cfg.PlanServiceURL)
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.PlanCacheTTL, err = getDuration("PLAN_CACHE_TTL", cfg.PlanCacheTTL); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.PlanCacheTTL <= 0 {
		return fmt.Errorf("plan cache ttl must be positive, got %s", c.PlanCacheTTL)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.DatabasePath == "" {
		return errors.New("DATABASE_PATH is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
