// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-secure-notepad/internal/config"
	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/migrations"
)

const (
	entriesTable = "vault_entries"
	keyColumn    = "entry_key"
	valueColumn  = "entry_value"
)

// DB wraps the sqlite connection pool.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// NewConnectSQLite opens (and if needed creates) the sqlite database file at
// cfg.Path and pings it within cfg.OpenTimeout.
func NewConnectSQLite(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// one writer keeps transactions from tripping over "database is locked"
	conn.SetMaxOpenConns(1)

	if cfg.OpenTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.OpenTimeout)
		defer cancel()
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("error creating DB dir: %w", err)
			}
		}
		// if not found - create
		f, err := os.OpenFile(dbFile, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

var _ PersistentStore = (*sqliteStore)(nil)

type sqliteStore struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLiteStore returns a [PersistentStore] backed by the vault_entries
// table of db. The schema must already be migrated.
func NewSQLiteStore(db *DB, log *logger.Logger) PersistentStore {
	return &sqliteStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.builder.
		Select(valueColumn).
		From(entriesTable).
		Where(sq.Eq{keyColumn: key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteStore.Get").
			Str("key", key).
			Msg("failed to query entry")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *sqliteStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.SetMany").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// sorted keys give a stable statement order
	keys := slices.Sorted(maps.Keys(entries))

	for _, key := range keys {
		query, args, err := s.upsert(key, entries[key])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).
				Str("func", "sqliteStore.SetMany").
				Str("key", key).
				Msg("failed to execute upsert")
			return fmt.Errorf("%w (key=%s): %w", ErrExecutingStatement, key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.SetMany").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	query, args, err := s.builder.Delete(entriesTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	// a single DELETE is atomic in sqlite
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Clear").Msg("failed to clear entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) upsert(key, value string) (string, []any, error) {
	return s.builder.
		Insert(entriesTable).
		Columns(keyColumn, valueColumn, "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(" + keyColumn + ") DO UPDATE SET " +
			valueColumn + " = excluded." + valueColumn + ", updated_at = excluded.updated_at").
		ToSql()
}
