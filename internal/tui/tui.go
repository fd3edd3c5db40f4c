// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/vault"
	"github.com/MKhiriev/go-secure-notepad/models"
)

// ErrUserQuit is returned by [TUI.Run] when the user closes the program.
var ErrUserQuit = errors.New("вышел из программы")

// Vault is the part of the credential vault the shell talks to.
type Vault interface {
	IsEstablished(ctx context.Context) (bool, error)
	Establish(ctx context.Context, password string) error
	Verify(ctx context.Context, password string) (bool, error)
	ReadNote(ctx context.Context, password string) (string, error)
	WriteNote(ctx context.Context, password, text string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Wipe(ctx context.Context) error
}

var _ Vault = (*vault.CredentialVault)(nil)

// TUI is the terminal shell of the notepad.
type TUI struct {
	vault     Vault
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(v Vault, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if v == nil {
		return nil, fmt.Errorf("tui: vault is nil")
	}
	return &TUI{vault: v, buildInfo: buildInfo, logger: log}, nil
}

// Run shows the unlock screen and blocks until the program exits. The
// password entered by the user lives only in memory for the lifetime of Run.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRoot(ctx)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("tui program failed")
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

func (t *TUI) newRoot(ctx context.Context) RootModel {
	sess := &session{}
	pages := map[string]tea.Model{
		pageUnlock:   NewUnlockModel(ctx, t.vault, sess),
		pageNotepad:  NewNotepadModel(ctx, t.vault, sess),
		pagePassword: NewPasswordModel(ctx, t.vault, sess),
	}
	return NewRootModel(pages, pageUnlock, t.buildInfo)
}
