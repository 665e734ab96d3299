package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Pranshu115/tatva/logger"
)

// BadgerConfig configures the on-disk session backend.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory is set.
	Path     string `yaml:"path" mapstructure:"path"`
	InMemory bool   `yaml:"in_memory" mapstructure:"in_memory"`
}

// BadgerBackend persists the session in a local badger database so it
// survives process restarts.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a badger database for sessions.
func OpenBadger(cfg BadgerConfig, log *logger.Logger) (*BadgerBackend, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("session: badger path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, fmt.Errorf("session: create badger directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1).WithSyncWrites(true)

	if log != nil {
		opts = opts.WithLogger(&badgerLogger{log: log.WithComponent("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("session: open badger: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

// Load reads the session stored under key.
func (b *BadgerBackend) Load(_ context.Context, key string) (*Session, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: badger load %q: %w", key, err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("session: badger decode %q: %w", key, err)
	}
	return &s, nil
}

// Save writes val under key. A positive ttl sets a badger entry TTL.
func (b *BadgerBackend) Save(_ context.Context, key string, val *Session, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("session: badger encode %q: %w", key, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("session: badger save %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("session: badger delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

var _ Backend = (*BadgerBackend)(nil)

// badgerLogger adapts *logger.Logger to badger.Logger.
type badgerLogger struct {
	log *logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
