package httpclient

import (
	"fmt"
	"maps"
	"net/url"
	"time"

	"github.com/Pranshu115/tatva/version"
)

const (
	defaultTimeout = 30 * time.Second

	// HeaderAuthorization carries the session bearer token.
	HeaderAuthorization = "Authorization"
	// HeaderRequestID carries the per-request correlation ID.
	HeaderRequestID = "X-Request-ID"
)

// Config configures the HTTP client. It is copied by New and never
// changed afterwards.
type Config struct {
	// BaseURL is the fixed origin prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the per-request deadline. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	if _, ok := c.Headers["Accept"]; !ok {
		c.Headers["Accept"] = "application/json"
	}
	if _, ok := c.Headers["User-Agent"]; !ok {
		c.Headers["User-Agent"] = version.UserAgent()
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("httpclient: base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("httpclient: invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("httpclient: base_url must be http or https, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

func (c Config) clone() Config {
	c.Headers = maps.Clone(c.Headers)
	return c
}
