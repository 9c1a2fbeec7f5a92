package session

import (
	"context"
	"fmt"

	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/database"
)

// OpenKV builds the KV selected by configuration. The returned close function
// releases the backend connection and is never nil. ctx bounds the initial
// connectivity check of network backends.
func OpenKV(ctx context.Context, cfg config.Config) (KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SessionBackend {
	case "", config.SessionBackendMemory:
		return NewMemoryKV(), noop, nil
	case config.SessionBackendRedis:
		client, err := database.ConnectRedis(ctx, cfg.SessionRedisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisKV(client, cfg.SessionKeyPrefix), client.Close, nil
	case config.SessionBackendSQLite, config.SessionBackendPostgres:
		db, err := database.OpenGorm(cfg.SessionBackend, cfg.SessionDSN)
		if err != nil {
			return nil, noop, err
		}
		kv, err := NewGormKV(db)
		if err != nil {
			return nil, noop, err
		}
		closer := noop
		if sqlDB, err := db.DB(); err == nil {
			closer = sqlDB.Close
		}
		return kv, closer, nil
	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
