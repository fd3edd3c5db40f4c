// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-notepad/internal/config"
	"github.com/MKhiriev/go-secure-notepad/internal/logger"
)

// NewPersistentStore opens the backend selected by cfg.Driver. For sqlite
// the schema is migrated before the store is returned.
func NewPersistentStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (PersistentStore, error) {
	log.Debug().
		Str("func", "NewPersistentStore").
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("opening persistent store")

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			log.Err(err).Str("func", "NewPersistentStore").Msg("error migrating database")
			return nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
		return NewSQLiteStore(db, log), nil
	case config.DriverBolt:
		return NewBoltStore(cfg.Path, cfg.OpenTimeout, log)
	case config.DriverFile:
		return NewFileStore(cfg.Path, log)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
