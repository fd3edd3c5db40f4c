package vault

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-notepad/internal/crypto"
	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/store"
	"github.com/MKhiriev/go-secure-notepad/internal/utils"
)

// newTestVault wires a vault to an in-memory store and the real provider with
// cheap note key costs.
func newTestVault(t *testing.T) (*CredentialVault, store.PersistentStore) {
	t.Helper()

	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	cp := crypto.NewCryptoProvider(crypto.Params{
		CredentialSalt: "vault-test",
		Time:           1,
		MemoryKiB:      64,
		Threads:        1,
	})

	return NewCredentialVault(st, cp, logger.Nop()), st
}

func TestCredentialVault_EstablishThenVerify(t *testing.T) {
	passwords := []string{"cat", "correct horse battery staple", "пароль", " ", "p@$$w0rd\n"}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			v, _ := newTestVault(t)
			ctx := context.Background()

			ok, err := v.IsEstablished(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, v.Establish(ctx, p))

			ok, err = v.IsEstablished(ctx)
			require.NoError(t, err)
			assert.True(t, ok)

			match, err := v.Verify(ctx, p)
			require.NoError(t, err)
			assert.True(t, match)
		})
	}
}

func TestCredentialVault_VerifyOtherPassword(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()
	require.NoError(t, v.Establish(ctx, "cat"))

	for _, p := range []string{"dog", "Cat", "cat ", "", "ca"} {
		match, err := v.Verify(ctx, p)
		require.NoError(t, err)
		assert.False(t, match, "password %q", p)
	}
}

func TestCredentialVault_VerifyWithoutCredential(t *testing.T) {
	v, _ := newTestVault(t)

	match, err := v.Verify(context.Background(), "cat")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCredentialVault_StoresOnlyDigest(t *testing.T) {
	v, st := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "hunter2"))

	digest, ok, err := st.Get(ctx, CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, digest, "hunter2")
}

func TestCredentialVault_EstablishGuards(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	assert.ErrorIs(t, v.Establish(ctx, ""), ErrEmptyPassword)

	require.NoError(t, v.Establish(ctx, "cat"))
	assert.ErrorIs(t, v.Establish(ctx, "dog"), ErrAlreadyEstablished)

	// the first credential is kept
	match, err := v.Verify(ctx, "cat")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestCredentialVault_NoteRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "plain", text: "hello"},
		{name: "multiline", text: "buy milk\ncall mom\n"},
		{name: "unicode", text: "日本語のメモ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestVault(t)
			ctx := context.Background()

			require.NoError(t, v.WriteNote(ctx, "cat", tt.text))

			got, err := v.ReadNote(ctx, "cat")
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestCredentialVault_ReadNoteBeforeAnyWrite(t *testing.T) {
	v, _ := newTestVault(t)

	got, err := v.ReadNote(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialVault_ReadNoteWrongPassword(t *testing.T) {
	v, st := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.WriteNote(ctx, "right", "top secret"))

	blob, _, err := st.Get(ctx, NoteKey)
	require.NoError(t, err)
	assert.NotContains(t, blob, "top secret")

	got, err := v.ReadNote(ctx, "wrong")
	assert.ErrorIs(t, err, ErrDecryptFailure)
	assert.Empty(t, got)
}

func TestCredentialVault_ReadNoteDamagedBlob(t *testing.T) {
	v, st := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, NoteKey, "not-a-blob"))

	_, err := v.ReadNote(ctx, "cat")
	assert.ErrorIs(t, err, ErrDecryptFailure)
}

func TestCredentialVault_ChangePassword(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "old"))
	require.NoError(t, v.WriteNote(ctx, "old", "secret"))

	require.NoError(t, v.ChangePassword(ctx, "old", "new"))

	got, err := v.ReadNote(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	_, err = v.ReadNote(ctx, "old")
	assert.ErrorIs(t, err, ErrDecryptFailure)

	match, err := v.Verify(ctx, "new")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestCredentialVault_ChangePasswordEmptyNote(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "old"))
	require.NoError(t, v.ChangePassword(ctx, "old", "new"))

	got, err := v.ReadNote(ctx, "new")
	require.NoError(t, err)
	assert.Empty(t, got)

	match, err := v.Verify(ctx, "old")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCredentialVault_ChangePasswordWrongOld(t *testing.T) {
	tests := []struct {
		name string
		note string
	}{
		{name: "with note", note: "secret"},
		{name: "empty note", note: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestVault(t)
			ctx := context.Background()

			require.NoError(t, v.Establish(ctx, "old"))
			require.NoError(t, v.WriteNote(ctx, "old", tt.note))

			err := v.ChangePassword(ctx, "guess", "new")
			require.ErrorIs(t, err, ErrRotationFailed)
			assert.ErrorIs(t, err, ErrWrongPassword)

			var rotErr *RotationError
			require.True(t, errors.As(err, &rotErr))
			assert.Equal(t, ReadStage, rotErr.Stage)

			match, err := v.Verify(ctx, "old")
			require.NoError(t, err)
			assert.True(t, match)

			got, err := v.ReadNote(ctx, "old")
			require.NoError(t, err)
			assert.Equal(t, tt.note, got)
		})
	}
}

func TestCredentialVault_ChangePasswordToEmpty(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "old"))

	err := v.ChangePassword(ctx, "old", "")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	var rotErr *RotationError
	require.ErrorAs(t, err, &rotErr)
	assert.Equal(t, CredentialStage, rotErr.Stage)

	match, err := v.Verify(ctx, "old")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestCredentialVault_ChangePasswordWithoutCredential(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.WriteNote(ctx, "old", "secret"))
	require.NoError(t, v.ChangePassword(ctx, "old", "new"))

	got, err := v.ReadNote(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	_, err = v.ReadNote(ctx, "old")
	assert.ErrorIs(t, err, ErrDecryptFailure)

	match, err := v.Verify(ctx, "new")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestCredentialVault_ChangePasswordWithoutCredentialWrongOld(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.WriteNote(ctx, "old", "secret"))

	err := v.ChangePassword(ctx, "guess", "new")
	assert.ErrorIs(t, err, ErrDecryptFailure)

	var rotErr *RotationError
	require.ErrorAs(t, err, &rotErr)
	assert.Equal(t, ReadStage, rotErr.Stage)

	got, err := v.ReadNote(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	established, err := v.IsEstablished(ctx)
	require.NoError(t, err)
	assert.False(t, established)
}

func TestCredentialVault_Wipe(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "cat"))
	require.NoError(t, v.WriteNote(ctx, "cat", "hello"))

	require.NoError(t, v.Wipe(ctx))

	ok, err := v.IsEstablished(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, p := range []string{"cat", "dog", ""} {
		got, err := v.ReadNote(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	// idempotent, and the vault can be set up again
	require.NoError(t, v.Wipe(ctx))
	require.NoError(t, v.Establish(ctx, "dog"))
}

func TestCredentialVault_Scenario(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Establish(ctx, "cat"))
	require.NoError(t, v.WriteNote(ctx, "cat", "hello"))
	require.NoError(t, v.ChangePassword(ctx, "cat", "dog"))

	got, err := v.ReadNote(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	match, err := v.Verify(ctx, "cat")
	require.NoError(t, err)
	assert.False(t, match)

	match, err = v.Verify(ctx, "dog")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestRotationError(t *testing.T) {
	err := rotationFailed(WriteStage, ErrEncryptFailure)

	assert.ErrorIs(t, err, ErrRotationFailed)
	assert.ErrorIs(t, err, ErrEncryptFailure)
	assert.NotErrorIs(t, err, ErrDecryptFailure)
	assert.Equal(t, "password change failed at write stage: note encryption failed", err.Error())
	assert.Equal(t, "stage(9)", RotationStage(9).String())
}

func TestCredentialVault_LogsWithoutSecrets(t *testing.T) {
	var buf bytes.Buffer
	st := store.NewMemoryStore()
	cp := crypto.NewCryptoProvider(crypto.Params{CredentialSalt: "vault-test", Time: 1, MemoryKiB: 64, Threads: 1})
	v := NewCredentialVault(st, cp, &logger.Logger{Logger: zerolog.New(&buf)})

	ctx := utils.WithOpID(context.Background(), "op-42")
	require.NoError(t, v.Establish(ctx, "hunter2"))
	require.NoError(t, v.WriteNote(ctx, "hunter2", "launch codes"))
	require.NoError(t, v.ChangePassword(ctx, "hunter2", "swordfish"))
	_, err := v.ReadNote(ctx, "wrong")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"op_id":"op-42"`)
	assert.Contains(t, out, `"op":"change_password"`)
	for _, secret := range []string{"hunter2", "swordfish", "launch codes"} {
		assert.NotContains(t, out, secret)
	}
}
