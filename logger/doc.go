// Package logger provides structured logging for tatva components
// using zerolog.
//
// Every component (httpclient, session, auth, resource) takes a *Logger
// and tags it with its own name:
//
//	log := logger.NewDefault("tatva").WithComponent("httpclient")
//	log.Warn("request failed", logger.Fields(logger.FieldStatusCode, 403))
//
// Tests use Nop() or NewWithWriter to keep output quiet or to inspect it.
package logger
