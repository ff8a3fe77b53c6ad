package checkpoint

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Config holds configuration for a Badger-backed checkpoint store.
type Config struct {
	// Path is the directory for the BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes. A lost checkpoint only costs
	// recomputation, so async is acceptable for long scans where write
	// latency matters.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns durable defaults for a persistent checkpoint.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Badger is a Store backed by BadgerDB: one key per processed starting
// value. Concurrent savers write disjoint-or-identical keys, so the union
// semantics the batch runner depends on need no read-modify-write cycle.
type Badger struct {
	db *badger.DB
}

// keyPrefix namespaces checkpoint keys so the database can host other
// records later without collisions.
var keyPrefix = []byte("processed/")

// OpenBadger opens (or creates) the checkpoint database.
func OpenBadger(cfg Config) (*Badger, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	return &Badger{db: db}, nil
}

// Close releases the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Load iterates every processed-value key into a fresh set. A brand-new
// database yields an empty set.
func (b *Badger) Load(ctx context.Context) (Set, error) {
	set := make(Set)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // keys carry the values
		opts.Prefix = keyPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().Key()
			n, err := decodeKey(key)
			if err != nil {
				return err
			}
			set[n] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	return set, nil
}

// Save writes one key per value. Values already present are overwritten
// with themselves; nothing is ever removed.
func (b *Badger) Save(ctx context.Context, processed Set) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for n := range processed {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := wb.Set(encodeKey(n), nil); err != nil {
			return fmt.Errorf("save checkpoint entry %d: %w", n, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush checkpoint: %w", err)
	}
	return nil
}

func encodeKey(n int64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], uint64(n))
	return key
}

func decodeKey(key []byte) (int64, error) {
	if len(key) != len(keyPrefix)+8 {
		return 0, fmt.Errorf("malformed checkpoint key %q", key)
	}
	return int64(binary.BigEndian.Uint64(key[len(keyPrefix):])), nil
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
