package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// NotepadModel shows the decrypted note in an editor. The note is only
// persisted on an explicit save. While the note cannot be loaded the editor is
// locked: only retry, lock and wipe are offered, so nothing overwrites it.
type NotepadModel struct {
	ctx     context.Context
	vault   Vault
	session *session

	editor textarea.Model
	saved  string

	loading    bool
	loadFailed bool
	saving     bool
	confirming bool
	confirm    confirmModel
	status     string
	errMsg     string
}

// NewNotepadModel creates a [NotepadModel] with an empty editor.
func NewNotepadModel(ctx context.Context, v Vault, sess *session) *NotepadModel {
	editor := textarea.New()
	editor.Placeholder = "Ваша заметка..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetWidth(72)
	editor.SetHeight(14)

	return &NotepadModel{
		ctx:     ctx,
		vault:   v,
		session: sess,
		editor:  editor,
		confirm: newWipeConfirm(),
	}
}

// Init implements [tea.Model]. Loads the note with the session password.
func (m *NotepadModel) Init() tea.Cmd {
	m.editor.Reset()
	m.saved = ""
	m.status = ""
	m.errMsg = ""
	m.confirming = false
	m.saving = false
	m.loadFailed = false

	if !m.session.unlocked() {
		return navigate(pageUnlock, nil)
	}

	m.loading = true
	return tea.Batch(m.editor.Focus(), cmdReadNote(m.ctx, m.vault, m.session.get()))
}

// Update implements [tea.Model].
func (m *NotepadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noteLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadFailed = true
			m.editor.Reset()
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.loadFailed = false
		m.errMsg = ""
		m.editor.SetValue(msg.text)
		m.saved = msg.text
		return m, nil
	case noteSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.saved = msg.text
		m.errMsg = ""
		m.status = "Сохранено"
		return m, cmdClearStatus()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Скопировано!"
		return m, cmdClearStatus()
	case statusNotice:
		if msg.text == "" {
			return m, nil
		}
		m.status = msg.text
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case wipedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = humanizeVaultError(msg.err)
			return m, nil
		}
		m.lock()
		return m, navigate(pageUnlock, nil)
	case tea.KeyMsg:
		if m.confirming {
			switch {
			case key.Matches(msg, keys.yes):
				m.confirming = false
				m.saving = true
				return m, cmdWipe(m.ctx, m.vault)
			case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
				m.confirming = false
			}
			return m, nil
		}
		if m.loading || m.saving {
			return m, nil
		}
		if m.loadFailed {
			return m.updateLoadFailed(msg)
		}

		switch {
		case key.Matches(msg, keys.save):
			m.saving = true
			m.errMsg = ""
			return m, cmdWriteNote(m.ctx, m.vault, m.session.get(), m.editor.Value())
		case key.Matches(msg, keys.passwd):
			return m, navigate(pagePassword, nil)
		case key.Matches(msg, keys.wipe):
			m.confirming = true
			return m, nil
		case key.Matches(msg, keys.copy):
			if m.editor.Value() == "" {
				m.status = "Заметка пуста"
				return m, cmdClearStatus()
			}
			return m, cmdCopyToClipboard(m.editor.Value())
		case key.Matches(msg, keys.lock):
			m.lock()
			return m, navigate(pageUnlock, nil)
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *NotepadModel) updateLoadFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.retry):
		m.loading = true
		m.errMsg = ""
		return m, cmdReadNote(m.ctx, m.vault, m.session.get())
	case key.Matches(msg, keys.wipe):
		m.confirming = true
	case key.Matches(msg, keys.lock):
		m.lock()
		return m, navigate(pageUnlock, nil)
	}
	return m, nil
}

// lock drops the session password and the plaintext held by the editor.
func (m *NotepadModel) lock() {
	m.session.clear()
	m.loadFailed = false
	m.editor.Reset()
	m.saved = ""
	m.status = ""
	m.errMsg = ""
}

func (m *NotepadModel) dirty() bool {
	return m.editor.Value() != m.saved
}

// View implements [tea.Model].
func (m *NotepadModel) View() string {
	if m.loading {
		return renderPage("БЛОКНОТ", "Расшифровка...", "ctrl+l: заблокировать")
	}
	if m.loadFailed {
		return m.viewLoadFailed()
	}

	var b strings.Builder
	b.WriteString(m.editor.View())
	b.WriteString("\n")

	switch {
	case m.saving:
		b.WriteString(statusStyle.Render("Подождите..."))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	case m.dirty():
		b.WriteString(statusStyle.Render("Есть несохраненные изменения"))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: m.errMsg}.View())
	}
	if m.confirming {
		b.WriteString("\n\n")
		b.WriteString(m.confirm.View())
	}

	title := "БЛОКНОТ"
	if m.dirty() {
		title += " *"
	}

	return renderPage(title, b.String(),
		"ctrl+s: сохранить │ ctrl+r: сменить пароль │ ctrl+y: копировать │ ctrl+l: заблокировать │ ctrl+x: стереть всё")
}

func (m *NotepadModel) viewLoadFailed() string {
	var b strings.Builder
	b.WriteString("Заметку не удалось открыть, редактирование недоступно.")
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorOverlayModel{message: m.errMsg}.View())
	}
	if m.confirming {
		b.WriteString("\n\n")
		b.WriteString(m.confirm.View())
	}

	return renderPage("БЛОКНОТ", b.String(), "r: повторить │ ctrl+l: заблокировать │ ctrl+x: стереть всё")
}
