package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/resource"
	"github.com/Pranshu115/tatva/session"
)

type mockFS struct {
	files   map[string]bool
	envLoad []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.envLoad = append(m.envLoad, path)
	return nil
}

func TestLoad_YAMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tatva.yml")
	yaml := `
environment: staging
api:
  base_url: https://procure.example.com/api
  timeout: 10s
  headers:
    X-Tenant: acme
session:
  backend: badger
  badger:
    path: /tmp/tatva-session
pagination:
  page_size: 25
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("tatva", WithConfigFile(path), WithEnvFile(filepath.Join(dir, "missing.env")), WithEnvPrefix("TATVA_TEST"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "tatva" || cfg.Environment != "staging" {
		t.Errorf("name/env = %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.API.BaseURL != "https://procure.example.com/api" || cfg.API.Timeout != 10*time.Second {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.API.Headers["x-tenant"] != "acme" && cfg.API.Headers["X-Tenant"] != "acme" {
		t.Errorf("headers = %v", cfg.API.Headers)
	}
	if cfg.Session.Backend != session.BackendBadger || cfg.Session.Badger.Path != "/tmp/tatva-session" {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Session.Key != session.DefaultKey {
		t.Errorf("session key = %q", cfg.Session.Key)
	}
	if cfg.Pagination.PageSize != 25 {
		t.Errorf("page size = %d", cfg.Pagination.PageSize)
	}
	if cfg.LoginURL != "/login" || cfg.Logging.Level != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Tracing.Environment != "staging" {
		t.Errorf("tracing environment = %q", cfg.Tracing.Environment)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TATVA_API_BASE_URL", "http://localhost:8080")
	t.Setenv("TATVA_API_TIMEOUT", "5s")
	t.Setenv("TATVA_SESSION_BACKEND", "redis")
	t.Setenv("TATVA_SESSION_REDIS_ADDR", "cache:6379")
	t.Setenv("TATVA_PAGINATION_PAGE_SIZE", "50")
	t.Setenv("TATVA_TRACING_ENABLED", "true")
	t.Setenv("API_BASE_URL", "http://ignored-without-prefix")

	cfg, err := Load("tatva", WithFileSystem(&mockFS{}), WithEnvPrefix("TATVA"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" || cfg.API.Timeout != 5*time.Second {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Session.Backend != session.BackendRedis || cfg.Session.Redis.Addr != "cache:6379" {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Session.Redis.PoolSize == 0 {
		t.Error("redis defaults not applied")
	}
	if cfg.Pagination.PageSize != 50 || !cfg.Tracing.Enabled {
		t.Errorf("pagination/tracing = %+v/%+v", cfg.Pagination, cfg.Tracing)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	_, err := Load("tatva-missing", WithFileSystem(&mockFS{}), WithEnvPrefix("TATVA_NONE"))
	if err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Fatalf("err = %v, want base_url error", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		c := Config{API: httpclient.Config{BaseURL: "https://api.example.com"}}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://files.example.com" }, "http or https"},
		{"page size too large", func(c *Config) { c.Pagination.PageSize = 1000 }, "page_size"},
		{"unknown backend", func(c *Config) { c.Session.Backend = "sqlite" }, "backend"},
		{"badger without path", func(c *Config) { c.Session.Backend = session.BackendBadger }, "badger.path"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.Name != "tatva" || c.Environment != "development" {
		t.Errorf("name/env = %q/%q", c.Name, c.Environment)
	}
	if c.Pagination.PageSize != resource.DefaultPageSize {
		t.Errorf("page size = %d", c.Pagination.PageSize)
	}
	if c.API.Timeout != 30*time.Second || c.API.Headers["Accept"] != "application/json" {
		t.Errorf("api = %+v", c.API)
	}
	if c.Session.Backend != session.BackendMemory {
		t.Errorf("backend = %q", c.Session.Backend)
	}
	if c.Metrics.Enabled || c.Metrics.Interval != 15*time.Second {
		t.Errorf("metrics = %+v", c.Metrics)
	}
}

func TestConfig_Redacted(t *testing.T) {
	var c Config
	c.API.Headers = map[string]string{"authorization": "Bearer secret", "X-Tenant": "acme"}
	c.Session.Redis.Password = "hunter2"
	c.Session.Redis.URL = "redis://svc:pw@cache:6379/0"

	r := c.Redacted()
	if r.API.Headers["authorization"] != "REDACTED" || r.API.Headers["X-Tenant"] != "acme" {
		t.Errorf("headers = %v", r.API.Headers)
	}
	if r.Session.Redis.Password != "REDACTED" || strings.Contains(r.Session.Redis.URL, "pw") {
		t.Errorf("redis = %+v", r.Session.Redis)
	}
	if c.API.Headers["authorization"] != "Bearer secret" || c.Session.Redis.Password != "hunter2" {
		t.Error("Redacted modified the original")
	}
}

func TestResolve(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config.yml":  true,
		"./tatva.yml":   true,
		".env":          true,
		"./config/.env": true,
	}}
	files := resolve("tatva", Options{FileSystem: fs})
	if files.ConfigFile != "./tatva.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("env file = %q", files.EnvFile)
	}

	files = resolve("tatva", Options{FileSystem: fs, ConfigFile: "/etc/tatva.yml", EnvFile: "/etc/tatva.env"})
	if files.ConfigFile != "" || files.EnvFile != "" {
		t.Errorf("missing explicit files should resolve to none, got %+v", files)
	}
}

func TestLoadInto_LoadsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{".env.tatva": true}}
	var out struct{}
	if err := LoadInto("tatva", &out, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fs.envLoad, []string{".env.tatva"}) {
		t.Errorf("env files loaded = %v", fs.envLoad)
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("SESSION_REDIS_ADDR")
	for _, want := range []string{"session_redis_addr", "session.redis_addr", "session.redis.addr", "session_redis.addr"} {
		if !slices.Contains(got, want) {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
	if got := keyVariants("NAME"); !slices.Equal(got, []string{"name"}) {
		t.Errorf("single part = %v", got)
	}
	if got := keyVariants("A_B_C_D_E_F_G_H"); len(got) != 2 {
		t.Errorf("long key variants = %d", len(got))
	}
}
