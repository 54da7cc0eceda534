// Package config loads service configuration from the environment and owns
// the external client constructors (Redis, MongoDB).
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything the service reads from the environment.
type Config struct {
	AppEnv   string
	HTTPAddr string

	// KVBackend selects the key-value store implementation: "redis",
	// "mongo" or "memory".
	KVBackend string

	RedisAddress  string
	RedisPassword string

	MongoURI string
	MongoDB  string

	JWTSecret string

	RateLimitPerDay  int
	RateLimitQueue   string
	CORSAllowOrigins []string
}

// Load reads the configuration, applying defaults for anything unset.
func Load() Config {
	return Config{
		AppEnv:           getenv("GO_ENV", "dev"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		KVBackend:        getenv("KV_BACKEND", "redis"),
		RedisAddress:     getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDB:          getenv("MONGODB_DB", "civicreport"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RateLimitPerDay:  atoi("RATE_LIMIT_PER_DAY", 10),
		RateLimitQueue:   getenv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue_limit"),
		CORSAllowOrigins: split(getenv("CORS_ORIGINS", "*")),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func split(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
