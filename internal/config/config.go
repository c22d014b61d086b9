package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"starred-catalog/internal/common"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvToken    = "GITHUB_TOKEN"
	EnvUsername = "GITHUB_USERNAME"
	EnvAPIURL   = "GITHUB_API_URL"
	EnvLogLevel = "LOG_LEVEL"
)

// Config is the resolved runtime configuration.
type Config struct {
	GitHub GitHubConfig
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

type GitHubConfig struct {
	Token string
	// Username selects /users/{name}/starred; empty means the token owner.
	Username string
	// APIURL overrides https://api.github.com/ when set.
	APIURL string
}

// Load reads envFile (when it exists) and then the environment. Variables
// already set in the environment win over the file. A missing token is an
// error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, common.WrapError(common.ErrCodeConfig, "load "+envFile, err)
		}
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:    strings.TrimSpace(os.Getenv(EnvToken)),
			Username: strings.TrimSpace(os.Getenv(EnvUsername)),
			APIURL:   strings.TrimSpace(os.Getenv(EnvAPIURL)),
		},
		LogLevel: getEnv(EnvLogLevel, "info"),
	}

	if cfg.GitHub.Token == "" {
		return nil, common.NewError(common.ErrCodeConfig, "missing "+EnvToken)
	}
	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
