package config

import "time"

// RateLimitConfig controls the redis token bucket applied to the login
// endpoint. Credential stuffing is the concern here, so the defaults are
// deliberately tight compared to a general API limiter.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// LoadRateLimitConfig reads limiter settings from the environment and
// clamps them to sane values.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("LOGIN_RATE_LIMIT_CAPACITY", 10),
		RefillTokens:   envInt("LOGIN_RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("LOGIN_RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		TTL:            envDur("LOGIN_RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         envStr("LOGIN_RATE_LIMIT_PREFIX", "rl:login"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}
