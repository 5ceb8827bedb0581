package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/pkg/adapters/redis"
	"github.com/aretw0/parley/pkg/persistence/middleware"
	"github.com/aretw0/parley/pkg/ports"
)

// ErrNoSharedStore is returned by session management commands when no Redis
// address is configured: in-memory sessions never outlive their process.
var ErrNoSharedStore = errors.New("no shared session store configured (set PARLEY_REDIS_ADDR)")

// SharedStore is the Redis session store, sealed when an encryption key is configured.
type SharedStore struct {
	ports.SessionStore
	Redis *redis.Store
}

// Close closes the Redis connection.
func (s *SharedStore) Close() error {
	return s.Redis.Close()
}

// OpenStore connects to the shared session store.
func OpenStore(ctx context.Context, cfg config.Config) (*SharedStore, error) {
	if cfg.RedisAddr == "" {
		return nil, ErrNoSharedStore
	}

	var mws []middleware.Middleware
	if cfg.EncryptionKey != "" {
		mw, err := encryption(cfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	rs := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		redis.WithPrefix(cfg.RedisPrefix),
		redis.WithTTL(cfg.SessionTTL),
	)
	if err := rs.Ping(ctx); err != nil {
		rs.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return &SharedStore{SessionStore: middleware.Chain(rs, mws...), Redis: rs}, nil
}

func encryption(cfg config.Config) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("PARLEY_ENCRYPTION_KEY: %w", err)
	}
	encCfg := middleware.EncryptionConfig{ActiveKey: active}
	for i, s := range cfg.EncryptionFallbackKeys {
		k, err := middleware.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("PARLEY_ENCRYPTION_FALLBACK_KEYS[%d]: %w", i, err)
		}
		encCfg.FallbackKeys = append(encCfg.FallbackKeys, k)
	}
	return middleware.NewEncryptionMiddleware(encCfg)
}
