package store

import (
	"context"
	"fmt"

	"greenbloom/condb"
	"greenbloom/config"
)

// Open builds the backend selected by cfg.Driver and wraps it in a Store.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return New(NewMemoryBackend()), nil
	case "bolt":
		b, err := OpenBolt(cfg.Path)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case "postgres":
		pool, err := condb.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect record database: %w", err)
		}
		return New(NewPostgresBackend(pool)), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
