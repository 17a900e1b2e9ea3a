package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. It is built once at startup and
// passed into component constructors; nothing mutates it afterwards, so it
// is safe to read from concurrently handled requests.
type Config struct {
	Env  string // application environment (dev/prod)
	Port string // HTTP port to listen on

	DBUser string
	DBPass string // optional, empty allowed
	DBHost string
	DBPort string
	DBName string

	BcryptCost int

	Auth AuthConfig
}

// AuthConfig groups everything the auth core needs. Every field except
// Secret has a safe development default.
type AuthConfig struct {
	Secret      string        // JWT signing secret, required
	Issuer      string        // iss claim minted and enforced
	Audience    string        // aud claim minted and enforced
	AccessTTL   time.Duration // access token lifetime
	TenantField string        // client-supplied field that is always rejected
	APIPrefix   string        // path prefix guarded by the gatekeeper
}

// ErrMissingSecret means JWT_SECRET is unset. The process must refuse to
// start rather than fall back to a guessable signing key.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Load reads configuration from environment variables. Call godotenv.Load
// beforehand if a .env file should be honored.
func Load() (Config, error) {
	ttl := envInt("JWT_ACCESS_TTL_SECONDS", 3600)
	if ttl <= 0 {
		return Config{}, errors.New("JWT_ACCESS_TTL_SECONDS must be a positive integer")
	}

	cfg := Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "8080"),
		DBUser:     envStr("DB_USER", "root"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envStr("DB_PORT", "3306"),
		DBName:     envStr("DB_NAME", "freightplan"),
		BcryptCost: envInt("BCRYPT_COST", 12),
		Auth: AuthConfig{
			Secret:      os.Getenv("JWT_SECRET"),
			Issuer:      envStr("JWT_ISSUER", "freightplan"),
			Audience:    envStr("JWT_AUDIENCE", "freightplan-api"),
			AccessTTL:   time.Duration(ttl) * time.Second,
			TenantField: envStr("TENANT_FIELD", "tenant_id"),
			APIPrefix:   envStr("API_PREFIX", "/api/"),
		},
	}

	if cfg.Auth.Secret == "" {
		return Config{}, ErrMissingSecret
	}
	if !strings.HasSuffix(cfg.Auth.APIPrefix, "/") {
		cfg.Auth.APIPrefix += "/"
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
