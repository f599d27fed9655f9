package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"

	// DevelopmentJWTSecret is accepted only with the memory store.
	DevelopmentJWTSecret = "classtrack-development-secret"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	LogLevel    slog.Level

	StoreDriver string
	PostgresDSN string

	JWTSecret      string
	AccessTokenTTL time.Duration
	PasswordHasher string

	// PublicAdminSignup lets POST /users/ create admins without a token.
	PublicAdminSignup bool

	SeedAccountsEnabled bool
	SeedAdminUsername   string
	SeedStudentUsername string
	SeedPassword        string
}

// Load reads the environment after merging an optional .env file.
// Variables already present in the environment take precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	level, err := parseLevel(envString("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	ttl, err := envDuration("ACCESS_TOKEN_TTL", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: envString("SERVICE_NAME", "classtrack-api"),
		HTTPPort:    envString("HTTP_PORT", "8080"),
		LogLevel:    level,

		StoreDriver: strings.ToLower(envString("STORE_DRIVER", StoreDriverPostgres)),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    ttl,
		PasswordHasher:    strings.ToLower(envString("PASSWORD_HASHER", HasherSHA256)),
		PublicAdminSignup: envBool("PUBLIC_ADMIN_SIGNUP", false),

		SeedAccountsEnabled: envBool("SEED_ACCOUNTS_ENABLED", true),
		SeedAdminUsername:   envString("SEED_ADMIN_USERNAME", "admin@classtrack.edu"),
		SeedStudentUsername: envString("SEED_STUDENT_USERNAME", "student@classtrack.edu"),
		SeedPassword:        os.Getenv("SEED_PASSWORD"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when STORE_DRIVER=postgres")
		}
	case StoreDriverMemory:
		if c.JWTSecret == "" {
			c.JWTSecret = DevelopmentJWTSecret
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return fmt.Errorf("unsupported PASSWORD_HASHER %q", c.PasswordHasher)
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return value, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
