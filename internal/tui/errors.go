// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-secure-notepad/internal/vault"
)

var (
	errPasswordRequired = errors.New("пароль обязателен")
	errPasswordMismatch = errors.New("пароли не совпадают")
	errWrongPassword    = errors.New("неверный пароль")
)

// humanizeVaultError turns a vault error into a message for the user.
func humanizeVaultError(err error) string {
	if err == nil {
		return ""
	}

	var rotErr *vault.RotationError
	switch {
	case errors.Is(err, vault.ErrWrongPassword):
		return "Неверный текущий пароль"
	case errors.As(err, &rotErr):
		return "Не удалось сменить пароль, прежний пароль и заметка сохранены"
	case errors.Is(err, vault.ErrDecryptFailure):
		return "Не удалось расшифровать заметку"
	case errors.Is(err, vault.ErrEncryptFailure):
		return "Не удалось зашифровать заметку"
	case errors.Is(err, vault.ErrHashFailure):
		return "Не удалось обработать пароль"
	case errors.Is(err, vault.ErrEmptyPassword):
		return "Пароль не может быть пустым"
	case errors.Is(err, vault.ErrAlreadyEstablished):
		return "Пароль уже задан"
	case errors.Is(err, vault.ErrStore):
		return "Ошибка хранилища, данные не изменены"
	}

	return err.Error()
}
