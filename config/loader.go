package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Pranshu115/tatva/logger"
)

// FileSystem abstracts the file lookups of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem reads the real file system.
type OSFileSystem struct{}

// Exists reports whether path exists.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file into the process environment. Variables
// already set are not overridden.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Options control where Load looks for configuration.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
	Log        *logger.Logger
}

// Option is a functional option for Load.
type Option func(*Options)

// WithFileSystem replaces the file system used for lookups.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit YAML file instead of searching for one.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file instead of searching for one.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix only binds environment variables starting with
// prefix + "_", with the prefix removed: TATVA_API_BASE_URL sets
// api.base_url.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// WithLogger sets the logger that file problems are reported to.
func WithLogger(log *logger.Logger) Option {
	return func(o *Options) { o.Log = log }
}

// Load reads the configuration for serviceName, applies defaults and
// validates the result.
func Load(serviceName string, opts ...Option) (*Config, error) {
	var cfg Config
	if err := LoadInto(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadInto unmarshals the merged file and environment values into out
// without defaults or validation.
func LoadInto(serviceName string, out any, opts ...Option) error {
	o := Options{FileSystem: OSFileSystem{}, Log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Log.WithComponent("config")

	files := resolve(serviceName, o)
	v := viper.New()

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
		log.Debug("config file loaded", logger.Fields("file", files.ConfigFile))
	}

	if files.EnvFile != "" {
		if err := o.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load env file", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		}
	}
	bindEnv(v, os.Environ(), o.EnvPrefix)

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", serviceName, err)
	}
	return nil
}

// resolvedFiles are the config and env files Load will read; empty means none.
type resolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

func resolve(serviceName string, o Options) resolvedFiles {
	var files resolvedFiles

	if o.ConfigFile != "" {
		if o.FileSystem.Exists(o.ConfigFile) {
			files.ConfigFile = o.ConfigFile
		}
	} else {
		files.ConfigFile = firstExisting(o.FileSystem, configCandidates(serviceName))
	}

	if o.EnvFile != "" {
		if o.FileSystem.Exists(o.EnvFile) {
			files.EnvFile = o.EnvFile
		}
	} else {
		files.EnvFile = firstExisting(o.FileSystem, envCandidates(serviceName))
	}
	return files
}

func configCandidates(serviceName string) []string {
	paths := []string{
		"./" + serviceName + ".yml",
		"./" + serviceName + ".yaml",
		"./config.yml",
		"./config/config.yml",
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, fmt.Sprintf("%s/.config/%s/config.yml", home, serviceName))
	}
	return paths
}

func envCandidates(serviceName string) []string {
	return []string{
		".env." + serviceName,
		".env",
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		"./config/.env",
	}
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, p := range paths {
		if fs.Exists(p) {
			return p
		}
	}
	return ""
}

// bindEnv sets every key variant of each environment variable so that
// nested keys containing underscores (api.base_url) are reachable from a
// flat name (API_BASE_URL).
func bindEnv(v *viper.Viper, environ []string, prefix string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if prefix != "" {
			rest, found := strings.CutPrefix(key, prefix+"_")
			if !found || rest == "" {
				continue
			}
			key = rest
		}
		for _, variant := range keyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// keyVariants returns every way of splitting an environment key into
// nested config keys:
//
//	SESSION_REDIS_ADDR -> session_redis_addr, session.redis_addr,
//	                      session.redis.addr, session_redis.addr
func keyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	if len(parts) == 1 {
		return parts
	}

	var out []string
	var walk func(i int, acc string)
	walk = func(i int, acc string) {
		if i == len(parts) {
			out = append(out, acc)
			return
		}
		walk(i+1, acc+"_"+parts[i])
		walk(i+1, acc+"."+parts[i])
	}
	// Cap the fan-out for unusually long keys.
	if len(parts) > 6 {
		return []string{strings.Join(parts, "_"), strings.Join(parts, ".")}
	}
	walk(1, parts[0])
	return out
}
