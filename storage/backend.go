package storage

import (
	"context"
	"fmt"

	"github.com/yashsharma-007/Financeautomation/config"
)

// Backend is a key -> blob persistence layer. Each dashboard collection is
// stored as one JSON blob under a fixed key. Get returns (nil, nil) when
// the key has never been written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the backend selected in the storage config.
func Open(ctx context.Context, cfg *config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "file":
		return NewFileBackend(cfg.File.Dir)
	case "sqlite":
		return NewSQLiteBackend(cfg.SQLite.Path)
	case "redis":
		return NewRedisBackend(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
