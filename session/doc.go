// Package session holds the persisted login session: one bearer token and
// the cached user profile.
//
// The Store is the only writer. Auth flows call SetSession after a
// successful login and ClearSession on logout; the HTTP pipeline reads
// Token on every request and clears the session on a 401.
//
// Backends:
//
//	MemoryBackend          in-process, for tests and one-shot runs
//	BadgerBackend          local directory, survives restarts
//	redis.Store[Session]   shared between processes
package session
