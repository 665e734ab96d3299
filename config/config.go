package config

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/observability"
	"github.com/Pranshu115/tatva/resource"
	"github.com/Pranshu115/tatva/session"
	"github.com/Pranshu115/tatva/validation"
)

// Config is the complete client configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`

	Logging    logger.Config              `yaml:"logging" mapstructure:"logging"`
	API        httpclient.Config          `yaml:"api" mapstructure:"api"`
	Session    session.Config             `yaml:"session" mapstructure:"session"`
	Pagination Pagination                 `yaml:"pagination" mapstructure:"pagination"`
	Tracing    observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics    observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`

	// LoginURL is where the user is sent when the session expires.
	LoginURL string `yaml:"login_url" mapstructure:"login_url"`
}

// Pagination configures list screens.
type Pagination struct {
	PageSize int `yaml:"page_size" mapstructure:"page_size" validate:"gte=1,lte=500"`
}

// ApplyDefaults fills in zero-value fields of every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "tatva"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.LoginURL == "" {
		c.LoginURL = "/login"
	}
	if c.Pagination.PageSize == 0 {
		c.Pagination.PageSize = resource.DefaultPageSize
	}
	c.Logging.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Session.ApplyDefaults()
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	c.Tracing.ApplyDefaults()
	c.Metrics.ApplyDefaults()
}

// Validate checks struct tags first, then each section's own rules.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("config: api: %w", err)
	}
	if c.Session.Backend == session.BackendBadger && !c.Session.Badger.InMemory && c.Session.Badger.Path == "" {
		return fmt.Errorf("config: session.badger.path is required for the badger backend")
	}
	if c.Session.Backend == session.BackendRedis {
		if err := c.Session.Redis.Validate(); err != nil {
			return fmt.Errorf("config: session.redis: %w", err)
		}
	}
	return nil
}

const redactedValue = "REDACTED"

// Redacted returns a copy safe to print: credentials are masked.
func (c Config) Redacted() Config {
	c.API.Headers = maps.Clone(c.API.Headers)
	for k := range c.API.Headers {
		if strings.EqualFold(k, "Authorization") {
			c.API.Headers[k] = redactedValue
		}
	}
	if c.Session.Redis.Password != "" {
		c.Session.Redis.Password = redactedValue
	}
	if u, err := url.Parse(c.Session.Redis.URL); err == nil && u.User != nil {
		c.Session.Redis.URL = u.Redacted()
	}
	return c
}
