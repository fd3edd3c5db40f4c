package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/vault"
	"github.com/MKhiriev/go-secure-notepad/models"
)

// fakeVault is an in-memory stand-in for the credential vault.
type fakeVault struct {
	password string
	note     string

	verifyCalls int
	writeCalls  int
	wiped       bool
	readErr     error
	changeErr   error
	writeErr    error
}

func (f *fakeVault) IsEstablished(context.Context) (bool, error) {
	return f.password != "", nil
}

func (f *fakeVault) Establish(_ context.Context, password string) error {
	if f.password != "" {
		return vault.ErrAlreadyEstablished
	}
	f.password = password
	return nil
}

func (f *fakeVault) Verify(_ context.Context, password string) (bool, error) {
	f.verifyCalls++
	return password != "" && password == f.password, nil
}

func (f *fakeVault) ReadNote(_ context.Context, password string) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	if f.note != "" && password != f.password {
		return "", vault.ErrDecryptFailure
	}
	return f.note, nil
}

func (f *fakeVault) WriteNote(_ context.Context, _, text string) error {
	f.writeCalls++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.note = text
	return nil
}

func (f *fakeVault) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	if f.changeErr != nil {
		return f.changeErr
	}
	if oldPassword != f.password {
		return &vault.RotationError{Stage: vault.ReadStage, Err: vault.ErrWrongPassword}
	}
	f.password = newPassword
	return nil
}

func (f *fakeVault) Wipe(context.Context) error {
	f.password, f.note, f.wiped = "", "", true
	return nil
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message.
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func requireNavigate(t *testing.T, cmd tea.Cmd, page string) NavigateTo {
	t.Helper()
	nav, ok := run(t, cmd).(NavigateTo)
	require.True(t, ok, "expected NavigateTo")
	assert.Equal(t, page, nav.Page)
	return nav
}

func newUnlock(t *testing.T, fv *fakeVault) (*UnlockModel, *session) {
	t.Helper()
	sess := &session{}
	m := NewUnlockModel(context.Background(), fv, sess)
	m.Update(run(t, m.Init()))
	return m, sess
}

func TestUnlock_FirstRunEstablishes(t *testing.T) {
	fv := &fakeVault{}
	m, sess := newUnlock(t, fv)
	require.True(t, m.establishing)

	m.inputs[0].SetValue("cat")
	m.inputs[1].SetValue("cat")

	_, cmd := m.Update(keyEnter())
	_, cmd = m.Update(run(t, cmd))

	requireNavigate(t, cmd, pageNotepad)
	assert.Equal(t, "cat", fv.password)
	assert.Equal(t, "cat", sess.get())
}

func TestUnlock_FirstRunValidation(t *testing.T) {
	tests := []struct {
		name    string
		pass    string
		repeat  string
		wantErr error
	}{
		{name: "empty", pass: "", repeat: "", wantErr: errPasswordRequired},
		{name: "mismatch", pass: "cat", repeat: "dog", wantErr: errPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := &fakeVault{}
			m, _ := newUnlock(t, fv)

			m.inputs[0].SetValue(tt.pass)
			m.inputs[1].SetValue(tt.repeat)

			_, cmd := m.Update(keyEnter())
			assert.Nil(t, cmd)
			assert.Equal(t, tt.wantErr.Error(), m.errMsg)
			assert.False(t, m.submitting)
			assert.Empty(t, fv.password)
		})
	}
}

func TestUnlock_WrongPassword(t *testing.T) {
	fv := &fakeVault{password: "cat"}
	m, sess := newUnlock(t, fv)
	require.False(t, m.establishing)

	m.inputs[0].SetValue("dog")
	_, cmd := m.Update(keyEnter())
	_, cmd = m.Update(run(t, cmd))

	assert.Nil(t, cmd)
	assert.Equal(t, errWrongPassword.Error(), m.errMsg)
	assert.Empty(t, m.inputs[0].Value())
	assert.False(t, sess.unlocked())
	assert.Contains(t, m.View(), "неверный пароль")
}

func TestUnlock_EmptyPasswordNeverVerified(t *testing.T) {
	fv := &fakeVault{password: "cat"}
	m, _ := newUnlock(t, fv)

	_, cmd := m.Update(keyEnter())
	assert.Nil(t, cmd)
	assert.Zero(t, fv.verifyCalls)
}

func TestUnlock_ForgotPasswordWipes(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "hello"}
	m, _ := newUnlock(t, fv)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, cmd)
	require.True(t, m.confirming)

	// "n" cancels
	m.Update(keyRunes("n"))
	assert.False(t, m.confirming)
	assert.False(t, fv.wiped)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	_, cmd = m.Update(keyRunes("y"))
	_, cmd = m.Update(run(t, cmd))
	m.Update(run(t, cmd))

	assert.True(t, fv.wiped)
	assert.True(t, m.establishing)
	assert.Contains(t, m.View(), "СОЗДАНИЕ ПАРОЛЯ")
}

func newUnlockedNotepad(t *testing.T, fv *fakeVault) (*NotepadModel, *session) {
	t.Helper()
	sess := &session{}
	sess.set(fv.password)
	m := NewNotepadModel(context.Background(), fv, sess)
	m.Init()
	m.Update(run(t, cmdReadNote(context.Background(), fv, sess.get())))
	return m, sess
}

func TestNotepad_LoadsAndSaves(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "hello"}
	m, _ := newUnlockedNotepad(t, fv)

	assert.False(t, m.loading)
	assert.Equal(t, "hello", m.editor.Value())
	assert.False(t, m.dirty())

	m.editor.SetValue("hello world")
	assert.True(t, m.dirty())
	assert.Contains(t, m.View(), "БЛОКНОТ *")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.saving)
	m.Update(run(t, cmd))

	assert.Equal(t, "hello world", fv.note)
	assert.False(t, m.dirty())
	assert.Equal(t, "Сохранено", m.status)
}

func TestNotepad_SaveFailureKeepsEdits(t *testing.T) {
	fv := &fakeVault{password: "cat", writeErr: vault.ErrEncryptFailure}
	m, _ := newUnlockedNotepad(t, fv)

	m.editor.SetValue("draft")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.Update(run(t, cmd))

	assert.Equal(t, "draft", m.editor.Value())
	assert.True(t, m.dirty())
	assert.Equal(t, "Не удалось зашифровать заметку", m.errMsg)
}

func TestNotepad_FailedLoadNeverOverwritesNote(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "precious", readErr: vault.ErrDecryptFailure}
	m, _ := newUnlockedNotepad(t, fv)

	require.True(t, m.loadFailed)
	assert.Equal(t, "Не удалось расшифровать заметку", m.errMsg)
	assert.Contains(t, m.View(), "r: повторить")

	blocked := []tea.KeyMsg{
		{Type: tea.KeyCtrlS},
		{Type: tea.KeyCtrlY},
		{Type: tea.KeyCtrlR},
		keyRunes("x"),
	}
	for _, k := range blocked {
		_, cmd := m.Update(k)
		assert.Nil(t, cmd, k.String())
	}

	assert.Zero(t, fv.writeCalls)
	assert.Equal(t, "precious", fv.note)
	assert.Empty(t, m.editor.Value())

	// retry once the note opens again
	fv.readErr = nil
	_, cmd := m.Update(keyRunes("r"))
	require.True(t, m.loading)
	m.Update(run(t, cmd))

	assert.False(t, m.loadFailed)
	assert.Empty(t, m.errMsg)
	assert.Equal(t, "precious", m.editor.Value())
}

func TestNotepad_FailedLoadAllowsLockAndWipe(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "precious", readErr: vault.ErrStore}
	m, sess := newUnlockedNotepad(t, fv)
	require.True(t, m.loadFailed)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, m.confirming)
	m.Update(keyRunes("n"))
	assert.False(t, fv.wiped)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	requireNavigate(t, cmd, pageUnlock)
	assert.False(t, sess.unlocked())
	assert.False(t, m.loadFailed)
	assert.Zero(t, fv.writeCalls)
}

func TestNotepad_LockDropsPlaintext(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "hello"}
	m, sess := newUnlockedNotepad(t, fv)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	requireNavigate(t, cmd, pageUnlock)

	assert.False(t, sess.unlocked())
	assert.Empty(t, m.editor.Value())
}

func TestNotepad_WipeAfterConfirm(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "hello"}
	m, sess := newUnlockedNotepad(t, fv)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.True(t, m.confirming)
	assert.Contains(t, m.View(), "y да")

	_, cmd := m.Update(keyRunes("y"))
	_, cmd = m.Update(run(t, cmd))
	requireNavigate(t, cmd, pageUnlock)

	assert.True(t, fv.wiped)
	assert.False(t, sess.unlocked())
}

func TestNotepad_CopyToClipboard(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	fv := &fakeVault{password: "cat", note: "hello"}
	m, _ := newUnlockedNotepad(t, fv)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m.Update(run(t, cmd))

	assert.Equal(t, "hello", copied)
	assert.Equal(t, "Скопировано!", m.status)

	clipboardWrite = func(string) error { return errors.New("no clipboard utility") }
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m.Update(run(t, cmd))
	assert.Contains(t, m.errMsg, "copy to clipboard")
}

func TestNotepad_InitWithoutSessionGoesToUnlock(t *testing.T) {
	m := NewNotepadModel(context.Background(), &fakeVault{}, &session{})
	requireNavigate(t, m.Init(), pageUnlock)
}

func newPasswordForm(t *testing.T, fv *fakeVault) (*PasswordModel, *session) {
	t.Helper()
	sess := &session{}
	sess.set(fv.password)
	m := NewPasswordModel(context.Background(), fv, sess)
	m.Init()
	return m, sess
}

func TestPassword_Change(t *testing.T) {
	fv := &fakeVault{password: "cat", note: "hello"}
	m, sess := newPasswordForm(t, fv)

	m.inputs[0].SetValue("cat")
	m.inputs[1].SetValue("dog")
	m.inputs[2].SetValue("dog")

	_, cmd := m.Update(keyEnter())
	_, cmd = m.Update(run(t, cmd))

	nav := requireNavigate(t, cmd, pageNotepad)
	assert.Equal(t, statusNotice{text: "Пароль изменен"}, nav.Payload)
	assert.Equal(t, "dog", sess.get())
	assert.Equal(t, "dog", fv.password)
}

func TestPassword_Failures(t *testing.T) {
	tests := []struct {
		name      string
		old, next string
		repeat    string
		changeErr error
		wantMsg   string
	}{
		{name: "missing new", old: "cat", wantMsg: errPasswordRequired.Error()},
		{name: "mismatch", old: "cat", next: "dog", repeat: "dig", wantMsg: errPasswordMismatch.Error()},
		{name: "wrong current", old: "cow", next: "dog", repeat: "dog", wantMsg: "Неверный текущий пароль"},
		{
			name: "write stage", old: "cat", next: "dog", repeat: "dog",
			changeErr: &vault.RotationError{Stage: vault.WriteStage, Err: vault.ErrEncryptFailure},
			wantMsg:   "Не удалось сменить пароль, прежний пароль и заметка сохранены",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := &fakeVault{password: "cat", changeErr: tt.changeErr}
			m, sess := newPasswordForm(t, fv)

			m.inputs[0].SetValue(tt.old)
			m.inputs[1].SetValue(tt.next)
			m.inputs[2].SetValue(tt.repeat)

			_, cmd := m.Update(keyEnter())
			if cmd != nil {
				m.Update(run(t, cmd))
			}

			assert.Equal(t, tt.wantMsg, m.errMsg)
			assert.Equal(t, "cat", sess.get())
			assert.Equal(t, "cat", fv.password)
		})
	}
}

func TestPassword_EscKeepsEditor(t *testing.T) {
	m, _ := newPasswordForm(t, &fakeVault{password: "cat"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	nav := requireNavigate(t, cmd, pageNotepad)
	assert.Equal(t, statusNotice{}, nav.Payload)
}

func TestRootModel_Routing(t *testing.T) {
	fv := &fakeVault{}
	ui, err := New(fv, models.NewAppBuildInfo("v1.2.3", "2026-10-15", "abc123"), logger.Nop())
	require.NoError(t, err)

	root := ui.newRoot(context.Background())
	_, isUnlock := root.current.(*UnlockModel)
	assert.True(t, isUnlock)

	updated, _ := root.Update(tea.KeyMsg{Type: tea.KeyF1})
	root = updated.(RootModel)
	assert.Contains(t, root.View(), "v1.2.3")
	assert.Contains(t, root.View(), "abc123")

	updated, _ = root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	root = updated.(RootModel)
	assert.False(t, root.showBuildInfo)

	updated, cmd := root.Update(NavigateTo{Page: pagePassword, Payload: statusNotice{text: "x"}})
	root = updated.(RootModel)
	_, isPassword := root.current.(*PasswordModel)
	assert.True(t, isPassword)
	assert.Equal(t, statusNotice{text: "x"}, run(t, cmd))

	updated, _ = root.Update(NavigateTo{Page: "missing"})
	_, isPassword = updated.(RootModel).current.(*PasswordModel)
	assert.True(t, isPassword)

	updated, cmd = root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, updated.(RootModel).quitByUser)
	assert.IsType(t, tea.QuitMsg{}, run(t, cmd))
}

func TestNew_NilVault(t *testing.T) {
	_, err := New(nil, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestHumanizeVaultError(t *testing.T) {
	assert.Empty(t, humanizeVaultError(nil))
	assert.Equal(t, "Не удалось расшифровать заметку", humanizeVaultError(vault.ErrDecryptFailure))
	assert.Equal(t, "Ошибка хранилища, данные не изменены", humanizeVaultError(vault.ErrStore))
	assert.Equal(t, "boom", humanizeVaultError(errors.New("boom")))
}
