// Package tokenstore persists the single bearer token of a storefront session
// under the fixed key "token". Backends: process memory, a local file
// (optionally sealed with nacl/secretbox), Redis, and MongoDB.
package tokenstore

import (
	"context"
	"fmt"

	"github.com/mobicorp/storefront/internal/core/ports"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Store is a TokenStore that can report its health and release resources.
type Store interface {
	ports.TokenStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config selects and configures a backend.
type Config struct {
	Backend string

	File   string
	Secret string

	RedisAddr string
	RedisDB   int

	MongoURI      string
	MongoDatabase string
}

// Open builds the configured backend. Network backends are pinged before
// they are returned.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(cfg.File, cfg.Secret)
	case BackendRedis:
		client, err := DialRedis(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		return NewRedis(client), nil
	case BackendMongo:
		client, db, err := DialMongo(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return nil, err
		}
		return NewMongo(client, db), nil
	default:
		return nil, fmt.Errorf("tokenstore: unknown backend %q", cfg.Backend)
	}
}
