package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Pranshu115/tatva/validation"
)

// Config contains logging configuration.
type Config struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console pretty"`
	// Output is stderr, stdout, discard, or a file path logs are appended to.
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults logs at info, in console format, to stderr.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate checks the level and format names.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// writer opens the configured output. Files are created with 0600 and
// stay open for the life of the process.
func (c *Config) writer() (io.Writer, error) {
	switch strings.ToLower(c.Output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard", "none":
		return io.Discard, nil
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", c.Output, err)
	}
	return f, nil
}
