// Package config loads the client configuration.
//
// Values come from, in increasing priority: a YAML file (tatva.yml or
// config.yml in the usual locations), a .env file, and the process
// environment. Environment keys map onto nested keys by splitting on
// underscores, so API_BASE_URL sets api.base_url and
// SESSION_REDIS_ADDR sets session.redis.addr.
//
//	cfg, err := config.Load("tatva", config.WithEnvPrefix("TATVA"))
package config
