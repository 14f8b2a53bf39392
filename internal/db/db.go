package db

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Dezmoral/Askar/internal/crypto"
	"go.uber.org/zap"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DB is the record store. Every operation loads the container from storage,
// works on it in memory and, if it changed anything, persists the whole
// container before returning. Operations are serialized.
type DB struct {
	mu      sync.Mutex
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
	hasher  *crypto.Hasher

	recoveries int
}

type Option func(*DB)

func WithLogger(logger *zap.Logger) Option {
	return func(db *DB) {
		if logger != nil {
			db.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

func WithHasher(h *crypto.Hasher) Option {
	return func(db *DB) {
		db.hasher = h
	}
}

func New(storage Storage, opts ...Option) *DB {
	db := &DB{
		storage: storage,
		logger:  zap.NewNop(),
		now:     time.Now,
		hasher:  crypto.DefaultHasher(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Open binds the store to a durable backend.
func Open(backend, path string, opts ...Option) (*DB, error) {
	var storage Storage
	var err error

	switch backend {
	case BackendJSON, "":
		storage, err = NewFileStorage(path)
	case BackendSQLite:
		storage, err = NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return New(storage, opts...), nil
}

func (db *DB) Close() error {
	if c, ok := db.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Recoveries reports how many times the store was re-initialized because
// the durable copy could not be read or decoded. A first run on an empty
// store does not count.
func (db *DB) Recoveries() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.recoveries
}

// load never fails: anything the storage cannot hand back is replaced by an
// empty container. A failed write of that container is only logged; the next
// mutation will try again.
func (db *DB) load() *Data {
	data, err := db.storage.Load()
	if err == nil && data != nil {
		return data
	}

	if errors.Is(err, ErrNoData) {
		db.logger.Info("initializing empty store", zap.Error(err))
	} else {
		db.recoveries++
		db.logger.Warn("store unreadable, re-initializing", zap.Error(err))
	}

	data = NewData()
	if err := db.storage.Persist(data); err != nil {
		db.logger.Error("failed to persist empty store", zap.Error(err))
	}
	return data
}

func (db *DB) persist(data *Data) error {
	if err := db.storage.Persist(data); err != nil {
		return fmt.Errorf("failed to persist store: %w", err)
	}
	return nil
}

func (db *DB) timestamp() Timestamp {
	return NewTimestamp(db.now())
}

func nextID(counter *int64) int64 {
	id := *counter
	if id < 1 {
		id = 1
	}
	*counter = id + 1
	return id
}
