package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string

	// Domain is the canonical webhook domain. Requests arriving on any other
	// host are treated as custom-domain tenants.
	Domain string

	SmartLeadBaseURL string
	SmartLeadTimeout time.Duration

	// LegacyUndefinedFields keeps parity with the original service, which
	// rendered missing client/lead fields as the literal text "undefined"
	// in the redirect URL. When false, missing fields render empty.
	LegacyUndefinedFields bool

	// StrictMutations makes a zero-row update report not-found instead of
	// silent success. Deletes stay idempotent either way.
	StrictMutations bool

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "5000"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		Domain:                strings.ToLower(strings.TrimSpace(getEnv("DOMAIN", ""))),
		SmartLeadBaseURL:      getEnv("SMARTLEAD_BASE_URL", "https://server.smartlead.ai"),
		SmartLeadTimeout:      getEnvAsDuration("SMARTLEAD_TIMEOUT", 5*time.Second),
		LegacyUndefinedFields: getEnvAsBool("LEGACY_UNDEFINED_FIELDS", true),
		StrictMutations:       getEnvAsBool("STRICT_MUTATIONS", false),
		CORSAllowedOrigins:    getEnvAsList("CORS_ALLOWED_ORIGINS"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping blanks.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
