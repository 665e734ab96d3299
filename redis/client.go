package redis

import (
	"context"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Pranshu115/tatva/logger"
)

// Client is a go-redis connection pool with the configured key prefix.
type Client struct {
	rdb    *goredis.Client
	log    *logger.Logger
	prefix string

	closeOnce sync.Once
	closeErr  error
}

// New creates a client. It does not dial; call Ping to check the server.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("redis")

	log.Debug("redis client created", logger.Fields("addr", opts.Addr, "db", opts.DB))
	return &Client{
		rdb:    goredis.NewClient(opts),
		log:    log,
		prefix: cfg.KeyPrefix,
	}, nil
}

// Ping checks that the server answers.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping %s: %w", c.rdb.Options().Addr, err)
	}
	return nil
}

// key applies the configured prefix.
func (c *Client) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Close closes the pool. Later calls return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.log.Debug("closing redis connection")
		c.closeErr = c.rdb.Close()
	})
	return c.closeErr
}
