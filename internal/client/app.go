// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/store"
	"github.com/MKhiriev/go-secure-notepad/internal/tui"
)

// Shell is the interactive front end driven by [App].
type Shell interface {
	Run(ctx context.Context) error
}

var _ Shell = (*tui.TUI)(nil)

var _ Client = (*App)(nil)

// App owns the store for the lifetime of the shell and closes it on exit.
type App struct {
	shell  Shell
	store  store.PersistentStore
	logger *logger.Logger
}

func NewApp(shell Shell, st store.PersistentStore, log *logger.Logger) (*App, error) {
	if shell == nil {
		return nil, errors.New("client: shell is nil")
	}
	if st == nil {
		return nil, errors.New("client: store is nil")
	}
	return &App{shell: shell, store: st, logger: log}, nil
}

// Run blocks until the shell exits. Quitting from the shell is a normal exit.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if closeErr := a.store.Close(); closeErr != nil {
			a.logger.Err(closeErr).Str("func", "App.Run").Msg("failed to close store")
			if err == nil {
				err = fmt.Errorf("close store: %w", closeErr)
			}
		}
	}()

	a.logger.Info().Str("func", "App.Run").Msg("notepad started")

	if err = a.shell.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			a.logger.Info().Str("func", "App.Run").Msg("notepad closed by user")
			return nil
		}
		return fmt.Errorf("run shell: %w", err)
	}

	return nil
}
