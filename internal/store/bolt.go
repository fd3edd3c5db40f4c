// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/MKhiriev/go-secure-notepad/internal/logger"
)

var vaultBucket = []byte("vault")

var _ PersistentStore = (*boltStore)(nil)

// boltStore keeps entries in a single bolt bucket. Every method runs in one
// bolt transaction, which makes SetMany and Clear atomic.
type boltStore struct {
	db     *bolt.DB
	logger *logger.Logger
}

// NewBoltStore opens the bolt file at path, waiting at most timeout for the
// file lock, and makes sure the vault bucket exists.
func NewBoltStore(path string, timeout time.Duration, log *logger.Logger) (PersistentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create bolt dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		log.Err(err).Str("func", "NewBoltStore").Msg("error opening bolt database")
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(vaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create vault bucket: %w", err)
	}

	return &boltStore{db: db, logger: log}, nil
}

func (b *boltStore) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(vaultBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction
		value, found = string(v), true
		return nil
	})
	if err != nil {
		return "", false, b.wrap("get", err)
	}

	return value, found, nil
}

func (b *boltStore) Set(ctx context.Context, key, value string) error {
	return b.SetMany(ctx, map[string]string{key: value})
}

func (b *boltStore) SetMany(_ context.Context, entries map[string]string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(vaultBucket)
		for k, v := range entries {
			if err := bucket.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return b.wrap("set", err)
	}

	return nil
}

func (b *boltStore) Clear(_ context.Context) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(vaultBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(vaultBucket)
		return err
	})
	if err != nil {
		return b.wrap("clear", err)
	}

	return nil
}

func (b *boltStore) Close() error {
	return b.db.Close()
}

func (b *boltStore) wrap(op string, err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrStoreClosed
	}
	b.logger.Err(err).Str("func", "boltStore."+op).Msg("bolt transaction failed")
	return fmt.Errorf("bolt %s: %w", op, err)
}
