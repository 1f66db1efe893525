package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
)

// BadgerConfig configures the on-disk session store.
type BadgerConfig struct {
	// Dir is the storage directory. Required unless InMemory is set.
	Dir string

	// InMemory keeps the store out of the filesystem (tests).
	InMemory bool

	// SyncWrites fsyncs every write. Default: true, a login must survive a crash.
	SyncWrites bool

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 16MB; a session is two short strings.
	ValueLogFileSize int64

	// MemTableSize is the memtable size in bytes. Default: 8MB.
	MemTableSize int64
}

// DefaultBadgerConfig returns the default configuration for dir.
func DefaultBadgerConfig(dir string) BadgerConfig {
	return BadgerConfig{
		Dir:              dir,
		SyncWrites:       true,
		ValueLogFileSize: 16 << 20,
		MemTableSize:     8 << 20,
	}
}

// BadgerStore persists the session in a Badger database.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	closed atomic.Bool
}

// OpenBadgerStore opens (or creates) the session database.
func OpenBadgerStore(cfg BadgerConfig, logger *slog.Logger) (*BadgerStore, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: logger}
	opts.SyncWrites = cfg.SyncWrites
	opts.NumVersionsToKeep = 1
	// Values are tiny; keep them in the LSM tree and under the batch limit
	// derived from a small memtable.
	opts.ValueThreshold = 1 << 10
	if cfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = cfg.ValueLogFileSize
	}
	if cfg.MemTableSize > 0 {
		opts.MemTableSize = cfg.MemTableSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	logger.Debug("session store opened", "dir", cfg.Dir, "in_memory", cfg.InMemory)
	return &BadgerStore{db: db, logger: logger}, nil
}

// Get reads both keys in one transaction.
func (b *BadgerStore) Get() (Session, error) {
	if b.closed.Load() {
		return Session{}, ErrClosed
	}

	var s Session
	err := b.db.View(func(txn *badger.Txn) error {
		token, err := readString(txn, KeyToken)
		if err != nil {
			return err
		}
		if token == "" {
			return ErrNoSession
		}
		name, err := readString(txn, KeyDisplayName)
		if err != nil {
			return err
		}
		s = Session{Token: token, DisplayName: name}
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

// Set writes both keys in one transaction.
func (b *BadgerStore) Set(s Session) error {
	if !s.Valid() {
		return ErrInvalidSession
	}
	if b.closed.Load() {
		return ErrClosed
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(KeyToken), []byte(s.Token)); err != nil {
			return err
		}
		return txn.Set([]byte(KeyDisplayName), []byte(s.DisplayName))
	})
	if err != nil {
		return fmt.Errorf("badger: set session: %w", err)
	}
	return nil
}

// Clear deletes both keys in one transaction.
func (b *BadgerStore) Clear() error {
	if b.closed.Load() {
		return ErrClosed
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(KeyToken)); err != nil {
			return err
		}
		return txn.Delete([]byte(KeyDisplayName))
	})
	if err != nil {
		return fmt.Errorf("badger: clear session: %w", err)
	}
	return nil
}

// Close flushes and closes the database. Safe to call more than once.
func (b *BadgerStore) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("badger: close db: %w", err)
	}
	b.logger.Debug("session store closed")
	return nil
}

// readString returns "" for a missing key.
func readString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger is chatty at info level, so everything below warning goes to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
