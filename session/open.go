package session

import (
	"context"
	"fmt"

	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/redis"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config selects and configures the session backend.
type Config struct {
	Backend string       `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=memory badger redis"`
	Key     string       `yaml:"key" mapstructure:"key"`
	Badger  BadgerConfig `yaml:"badger" mapstructure:"badger"`
	Redis   redis.Config `yaml:"redis" mapstructure:"redis"`
}

// ApplyDefaults fills in the memory backend and DefaultKey.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.Backend == BackendRedis {
		c.Redis.ApplyDefaults()
	}
}

// Open builds the Store selected by cfg. The caller must Close it.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	var backend Backend
	switch cfg.Backend {
	case BackendMemory:
		backend = NewMemoryBackend()
	case BackendBadger:
		b, err := OpenBadger(cfg.Badger, log)
		if err != nil {
			return nil, err
		}
		backend = b
	case BackendRedis:
		client, err := redis.New(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("session: %w", err)
		}
		backend = redis.NewStore[Session](client)
	default:
		return nil, fmt.Errorf("session: unknown backend %q", cfg.Backend)
	}

	log.Debug("session store opened", logger.Fields(logger.FieldBackend, cfg.Backend))
	return NewStore(backend, WithKey(cfg.Key), WithLogger(log)), nil
}
