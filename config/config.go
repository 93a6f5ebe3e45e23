package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DatabaseURL string
	DBSSLMode   string
	AutoMigrate bool

	// Model service configuration
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
	MealLocale string

	// Redis configuration, used for rate limiting only
	RedisURL         string
	RateLimitPerHour int

	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	StaticDir          string
}

const (
	DefaultServerPort = "3000"
	DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultLLMModel   = "gemini-1.5-flash"
	DefaultMealLocale = "Italian"
)

// LoadConfig reads configuration from a .env file (development only), an
// optional config.yml, environment variables and finally Docker secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v, err := newViper()
	if err != nil {
		return nil, err
	}

	cfg := fromViper(v)
	cfg.Env = env

	// Docker secrets only fill what the environment left empty
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = readSecret("gemini_api_key")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = readSecret("database_url")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = readSecret("redis_url")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.host", "")
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("llm.base_url", DefaultLLMBaseURL)
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("meal.locale", DefaultMealLocale)
	v.SetDefault("rate_limit.per_hour", 60)
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Several names are accepted for the values the original deployment used
	bindings := map[string][]string{
		"server.port":          {"PORT", "SERVER_PORT"},
		"server.host":          {"SERVER_HOST"},
		"db.url":               {"DATABASE_URL"},
		"db.ssl_mode":          {"DB_SSL_MODE"},
		"db.auto_migrate":      {"AUTO_MIGRATE"},
		"llm.api_key":          {"GEMINI_API_KEY", "LLM_API_KEY"},
		"llm.base_url":         {"LLM_BASE_URL"},
		"llm.model":            {"LLM_MODEL"},
		"meal.locale":          {"MEAL_LOCALE"},
		"redis.url":            {"REDIS_URL"},
		"rate_limit.per_hour":  {"RATE_LIMIT_PER_HOUR"},
		"cors.allowed_origins": {"CORS_ALLOWED_ORIGINS"},
		"log.level":            {"LOG_LEVEL"},
		"log.format":           {"LOG_FORMAT"},
		"static.dir":           {"STATIC_DIR"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return v, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:         v.GetString("server.port"),
		ServerHost:         v.GetString("server.host"),
		DatabaseURL:        v.GetString("db.url"),
		DBSSLMode:          v.GetString("db.ssl_mode"),
		AutoMigrate:        v.GetBool("db.auto_migrate"),
		LLMAPIKey:          v.GetString("llm.api_key"),
		LLMBaseURL:         v.GetString("llm.base_url"),
		LLMModel:           v.GetString("llm.model"),
		MealLocale:         v.GetString("meal.locale"),
		RedisURL:           v.GetString("redis.url"),
		RateLimitPerHour:   v.GetInt("rate_limit.per_hour"),
		CORSAllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		LogLevel:           v.GetString("log.level"),
		LogFormat:          v.GetString("log.format"),
		StaticDir:          v.GetString("static.dir"),
	}
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DatabaseDSN returns DatabaseURL with DBSSLMode applied when the URL does
// not set sslmode itself.
func (c *Config) DatabaseDSN() string {
	dsn := c.DatabaseURL
	if c.DBSSLMode == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "sslmode=" + c.DBSSLMode
	}
	return strings.TrimSpace(dsn + " sslmode=" + c.DBSSLMode)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
