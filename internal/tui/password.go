package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PasswordModel is the change-password form: current password, new password
// and its repeat. Edits in the notepad survive a visit to this screen.
type PasswordModel struct {
	ctx     context.Context
	vault   Vault
	session *session

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewPasswordModel creates a [PasswordModel] with three masked inputs.
func NewPasswordModel(ctx context.Context, v Vault, sess *session) *PasswordModel {
	return &PasswordModel{
		ctx:     ctx,
		vault:   v,
		session: sess,
		inputs: []textinput.Model{
			newPasswordInput("current password"),
			newPasswordInput("new password"),
			newPasswordInput("repeat new password"),
		},
	}
}

// Init implements [tea.Model].
func (m *PasswordModel) Init() tea.Cmd {
	resetInputs(m.inputs)
	m.focus = 0
	m.submitting = false
	m.errMsg = ""

	if !m.session.unlocked() {
		return navigate(pageUnlock, nil)
	}
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *PasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case passwordChangedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.session.set(msg.password)
		resetInputs(m.inputs)
		m.focus = 0
		m.errMsg = ""
		return m, navigate(pageNotepad, statusNotice{text: "Пароль изменен"})
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.esc):
			resetInputs(m.inputs)
			m.focus = 0
			m.errMsg = ""
			// back to the editor without reloading it
			return m, navigate(pageNotepad, statusNotice{})
		case key.Matches(msg, keys.tab):
			m.focus = focusNext(m.inputs, m.focus)
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.focus = focusPrev(m.inputs, m.focus)
			return m, nil
		case key.Matches(msg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PasswordModel) submit() (tea.Model, tea.Cmd) {
	oldPass := m.inputs[0].Value()
	newPass := m.inputs[1].Value()

	switch {
	case oldPass == "" || newPass == "":
		m.errMsg = errPasswordRequired.Error()
		return m, nil
	case newPass != m.inputs[2].Value():
		m.errMsg = errPasswordMismatch.Error()
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true
	return m, cmdChangePassword(m.ctx, m.vault, oldPass, newPass)
}

// View implements [tea.Model].
func (m *PasswordModel) View() string {
	var b strings.Builder
	b.WriteString("Поле     │ Значение\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Текущий  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Новый    │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")
	b.WriteString("Повтор   │ [")
	b.WriteString(m.inputs[2].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Перешифровка...]\n")
	} else {
		b.WriteString("\n[Сменить пароль]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: m.errMsg}.View())
		b.WriteString("\n")
	}

	return renderPage("СМЕНА ПАРОЛЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
