package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server and the CLI.
type Config struct {
	DBPath        string
	Host          string
	Port          uint
	LogUseCases   bool
	TokenTTL      time.Duration
	Realm         string
	AdminUser     string
	AdminPassword string
}

// DefaultConfig returns a Config with sensible defaults. No bootstrap
// administrator is configured by default.
func DefaultConfig() Config {
	return Config{
		DBPath:   defaultDBPath(),
		Host:     "localhost",
		Port:     8080,
		TokenTTL: 12 * time.Hour,
		Realm:    "timesheet",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timesheet.db"
	}
	return filepath.Join(home, ".timesheet", "timesheet.db")
}

// Load reads the optional env files (".env" when none are given) into the
// process environment without overriding variables already set, then
// builds a Config from the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(), nil
}

// FromEnv reads configuration from environment variables, falling back to
// defaults for any unset or unparsable values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TIMESHEET_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMESHEET_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("TIMESHEET_PORT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil && n > 0 {
			cfg.Port = uint(n)
		}
	}
	if v := os.Getenv("TIMESHEET_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMESHEET_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("TIMESHEET_REALM"); v != "" {
		cfg.Realm = v
	}
	cfg.AdminUser = os.Getenv("TIMESHEET_ADMIN_USER")
	cfg.AdminPassword = os.Getenv("TIMESHEET_ADMIN_PASSWORD")

	return cfg
}

// BootstrapAdmin reports whether an administrator should be created on an
// empty database.
func (c Config) BootstrapAdmin() bool {
	return c.AdminUser != "" && c.AdminPassword != ""
}
