package config

import (
	"strings"
	"time"
)

// RedisConfig contains the optional Redis connection used by the track
// metadata cache. An empty address disables the cache entirely.
type RedisConfig struct {
	// Addr is the Redis host:port. Empty disables the track cache.
	Addr string `env:"ADDR" envDefault:""`

	// Password is the Redis password, if any.
	Password string `env:"PASSWORD" envDefault:""`

	// DB is the Redis database number.
	DB int `env:"DB" envDefault:"0"`

	// TrackTTL is how long resolved track metadata stays cached.
	TrackTTL time.Duration `env:"TRACK_TTL" envDefault:"24h"`
}

// Enabled returns true when a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}
