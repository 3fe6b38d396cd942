package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Addr     string `env:"ADDR,      default=:8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionTimeout is the sliding inactivity window after which a session
	// expires.
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT, default=30m"`

	// StoreBackend selects the entity store backing: memory or mongo.
	StoreBackend string `env:"STORE_BACKEND, default=memory"`
	// SessionBackend selects the session registry backing: memory or redis.
	SessionBackend string `env:"SESSION_BACKEND, default=memory"`

	// Bootstrap admin seeded on first run when the user collection is empty.
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=billboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
