package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {Required: []string{"DATABASE_URL", "GEMINI_API_KEY"}},
		Test:        {Required: []string{}},
		CI:          {Required: []string{"DATABASE_URL"}},
		Production:  {Required: []string{"DATABASE_URL", "GEMINI_API_KEY"}},
	}

	requiredValues = map[string]func(*Config) string{
		"DATABASE_URL":   func(c *Config) string { return c.DatabaseURL },
		"GEMINI_API_KEY": func(c *Config) string { return c.LLMAPIKey },
	}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	for _, name := range requirements[cfg.Env].Required {
		if requiredValues[name](cfg) == "" {
			errs = append(errs, ValidationError{Field: name, Message: fmt.Sprintf("required in %s environment", cfg.Env)})
		}
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, ValidationError{Field: "LOG_LEVEL", Message: err.Error()})
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("must be text or json, got %q", cfg.LogFormat)})
	}

	if cfg.RateLimitPerHour < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("%s", strings.Join(msgs, "\n"))
	}

	return nil
}
