// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// UnlockModel is the first screen. When no password exists it asks for a new
// one twice and establishes it; otherwise it verifies the entered password.
// On success the password is kept in the session and the notepad opens.
// The screen also offers a wipe for a forgotten password.
type UnlockModel struct {
	ctx     context.Context
	vault   Vault
	session *session

	inputs []textinput.Model
	focus  int

	checking     bool
	establishing bool
	submitting   bool
	confirming   bool
	confirm      confirmModel
	errMsg       string
	status       string
}

// NewUnlockModel creates an [UnlockModel] with a password and a repeat input.
func NewUnlockModel(ctx context.Context, v Vault, sess *session) *UnlockModel {
	return &UnlockModel{
		ctx:     ctx,
		vault:   v,
		session: sess,
		inputs: []textinput.Model{
			newPasswordInput("password"),
			newPasswordInput("repeat password"),
		},
		confirm: newWipeConfirm(),
	}
}

// Init implements [tea.Model]. Clears the form and asks the vault whether a
// password is already set.
func (m *UnlockModel) Init() tea.Cmd {
	resetInputs(m.inputs)
	m.focus = 0
	m.checking = true
	m.submitting = false
	m.confirming = false
	m.errMsg = ""

	return cmdCheckEstablished(m.ctx, m.vault)
}

// Update implements [tea.Model].
func (m *UnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case establishedMsg:
		m.checking = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.establishing = !msg.established
		return m, nil
	case unlockResult:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		if !msg.match {
			m.errMsg = errWrongPassword.Error()
			m.inputs[0].Reset()
			return m, nil
		}
		m.session.set(msg.password)
		resetInputs(m.inputs)
		m.focus = 0
		m.errMsg = ""
		m.status = ""
		return m, navigate(pageNotepad, nil)
	case wipedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.status = "Данные стерты, задайте новый пароль"
		m.checking = true
		return m, cmdCheckEstablished(m.ctx, m.vault)
	case tea.KeyMsg:
		if m.confirming {
			switch {
			case key.Matches(msg, keys.yes):
				m.confirming = false
				m.submitting = true
				return m, cmdWipe(m.ctx, m.vault)
			case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
				m.confirming = false
			}
			return m, nil
		}
		if m.checking || m.submitting {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.tab):
			if m.establishing {
				m.focus = focusNext(m.inputs, m.focus)
			}
			return m, nil
		case key.Matches(msg, keys.backtab):
			if m.establishing {
				m.focus = focusPrev(m.inputs, m.focus)
			}
			return m, nil
		case key.Matches(msg, keys.wipe):
			if !m.establishing {
				m.confirming = true
			}
			return m, nil
		case key.Matches(msg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *UnlockModel) submit() (tea.Model, tea.Cmd) {
	pass := m.inputs[0].Value()
	if pass == "" {
		m.errMsg = errPasswordRequired.Error()
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true

	if m.establishing {
		if pass != m.inputs[1].Value() {
			m.submitting = false
			m.errMsg = errPasswordMismatch.Error()
			return m, nil
		}
		return m, cmdEstablish(m.ctx, m.vault, pass)
	}

	return m, cmdVerify(m.ctx, m.vault, pass)
}

// View implements [tea.Model].
func (m *UnlockModel) View() string {
	if m.checking {
		return renderPage("БЛОКНОТ", "Загрузка...", "")
	}

	var b strings.Builder
	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	if m.establishing {
		b.WriteString("Повтор  │ [")
		b.WriteString(m.inputs[1].View())
		b.WriteString("]\n")
	}

	switch {
	case m.submitting:
		b.WriteString("\n[Подождите...]\n")
	case m.establishing:
		b.WriteString("\n[Создать]\n")
	default:
		b.WriteString("\n[Открыть]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: m.errMsg}.View())
		b.WriteString("\n")
	}
	if m.confirming {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
	}

	title := "ВХОД"
	hotKeys := "enter: открыть │ ctrl+x: забыли пароль (стереть всё)"
	if m.establishing {
		title = "СОЗДАНИЕ ПАРОЛЯ"
		hotKeys = "tab: след. поле │ enter: создать"
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}
