// Package redis stores the tatva session in Redis so several processes
// (a CLI and a worker, or replicas behind a gateway) share one login.
//
//	client, err := redis.New(redis.Config{URL: "redis://localhost:6379/0", KeyPrefix: "tatva"}, log)
//	backend := redis.NewStore[session.Session](client)
//
// Store keeps one JSON document per key and expires it with the TTL it
// was saved with.
package redis
