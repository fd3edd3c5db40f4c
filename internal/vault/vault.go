// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-secure-notepad/internal/crypto"
	"github.com/MKhiriev/go-secure-notepad/internal/logger"
	"github.com/MKhiriev/go-secure-notepad/internal/store"
	"github.com/MKhiriev/go-secure-notepad/internal/utils"
)

// Store keys of the two vault entries.
const (
	CredentialKey = "credential_digest"
	NoteKey       = "note_blob"
)

// CredentialVault establishes and verifies the password and keeps the note
// encrypted under it. Operations on one vault are serialized; callers must
// not share the underlying store with another writer.
type CredentialVault struct {
	mu     sync.Mutex
	store  store.PersistentStore
	crypto crypto.CryptoProvider
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewCredentialVault returns a vault over the given store and crypto
// provider. The vault does not own the store: closing it is up to the caller.
func NewCredentialVault(st store.PersistentStore, cp crypto.CryptoProvider, log *logger.Logger) *CredentialVault {
	return &CredentialVault{
		store:  st,
		crypto: cp,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}
}

// IsEstablished reports whether a password has been set.
func (v *CredentialVault) IsEstablished(ctx context.Context) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok, err := v.storedDigest(ctx)
	return ok, err
}

// Establish sets the first password. It fails with [ErrEmptyPassword] for an
// empty password and with [ErrAlreadyEstablished] when a password exists.
func (v *CredentialVault) Establish(ctx context.Context, password string) error {
	log := v.opLogger(ctx, "establish")

	if password == "" {
		return ErrEmptyPassword
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	_, ok, err := v.storedDigest(ctx)
	if err != nil {
		return err
	}
	if ok {
		log.Warn().Msg("password already established")
		return ErrAlreadyEstablished
	}

	digest, err := v.hash(password)
	if err != nil {
		log.Err(err).Msg("failed to hash password")
		return err
	}

	if err = v.store.Set(ctx, CredentialKey, digest); err != nil {
		log.Err(err).Msg("failed to store credential")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	log.Info().Msg("password established")
	return nil
}

// Verify reports whether password matches the stored credential. An empty
// password or a missing credential yields false without hashing anything.
// A mismatch is not an error.
func (v *CredentialVault) Verify(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	log := v.opLogger(ctx, "verify")

	ok, err := v.verify(ctx, password)
	if err != nil {
		log.Err(err).Msg("failed to verify password")
		return false, err
	}
	log.Debug().Bool("match", ok).Msg("password checked")

	return ok, nil
}

// ReadNote decrypts the stored note with password. An empty or missing note
// is returned as "" without decrypting. Any decryption problem is reported
// as [ErrDecryptFailure].
func (v *CredentialVault) ReadNote(ctx context.Context, password string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	note, err := v.readNote(ctx, password)
	if err != nil {
		v.opLogger(ctx, "read_note").Err(err).Msg("failed to read note")
		return "", err
	}

	return note, nil
}

// WriteNote encrypts text with password and stores it. An empty text is
// stored as an empty entry without encrypting. The password is expected to
// be the verified current one; it is not checked again here.
func (v *CredentialVault) WriteNote(ctx context.Context, password, text string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	log := v.opLogger(ctx, "write_note")

	blob, err := v.sealNote(password, text)
	if err != nil {
		log.Err(err).Msg("failed to encrypt note")
		return err
	}

	if err = v.store.Set(ctx, NoteKey, blob); err != nil {
		log.Err(err).Msg("failed to store note")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	log.Debug().Bool("empty", text == "").Msg("note saved")
	return nil
}

// ChangePassword re-encrypts the note under newPassword and makes
// newPassword the credential. The note and the new digest are written in one
// store call, so on any error (a [*RotationError]) the previous password and
// note remain valid and consistent.
func (v *CredentialVault) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	log := v.opLogger(ctx, "change_password")

	if newPassword == "" {
		return rotationFailed(CredentialStage, ErrEmptyPassword)
	}

	// an empty note decrypts under any password, so check the credential
	// when there is one
	stored, established, err := v.storedDigest(ctx)
	if err != nil {
		log.Err(err).Stringer("stage", ReadStage).Msg("failed to load credential")
		return rotationFailed(ReadStage, err)
	}
	if established {
		match, err := v.matches(stored, oldPassword)
		if err != nil {
			log.Err(err).Stringer("stage", ReadStage).Msg("failed to check old password")
			return rotationFailed(ReadStage, err)
		}
		if !match {
			log.Warn().Stringer("stage", ReadStage).Msg("old password does not match")
			return rotationFailed(ReadStage, ErrWrongPassword)
		}
	}

	note, err := v.readNote(ctx, oldPassword)
	if err != nil {
		log.Err(err).Stringer("stage", ReadStage).Msg("failed to read note")
		return rotationFailed(ReadStage, err)
	}

	blob, err := v.sealNote(newPassword, note)
	if err != nil {
		log.Err(err).Stringer("stage", WriteStage).Msg("failed to re-encrypt note")
		return rotationFailed(WriteStage, err)
	}

	digest, err := v.hash(newPassword)
	if err != nil {
		log.Err(err).Stringer("stage", CredentialStage).Msg("failed to hash new password")
		return rotationFailed(CredentialStage, err)
	}

	err = v.store.SetMany(ctx, map[string]string{
		NoteKey:       blob,
		CredentialKey: digest,
	})
	if err != nil {
		// nothing was persisted
		log.Err(err).Stringer("stage", WriteStage).Msg("failed to commit rotation")
		return rotationFailed(WriteStage, fmt.Errorf("%w: %w", ErrStore, err))
	}

	log.Info().Msg("password changed")
	return nil
}

// Wipe removes the credential and the note. It needs no password and is
// idempotent.
func (v *CredentialVault) Wipe(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	log := v.opLogger(ctx, "wipe")

	if err := v.store.Clear(ctx); err != nil {
		log.Err(err).Msg("failed to wipe vault")
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	log.Info().Msg("vault wiped")
	return nil
}

func (v *CredentialVault) storedDigest(ctx context.Context) (string, bool, error) {
	digest, ok, err := v.store.Get(ctx, CredentialKey)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !ok || digest == "" {
		return "", false, nil
	}
	return digest, true, nil
}

func (v *CredentialVault) verify(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	stored, ok, err := v.storedDigest(ctx)
	if err != nil || !ok {
		return false, err
	}

	return v.matches(stored, password)
}

func (v *CredentialVault) matches(stored, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	digest, err := v.hash(password)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1, nil
}

func (v *CredentialVault) readNote(ctx context.Context, password string) (string, error) {
	blob, ok, err := v.store.Get(ctx, NoteKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !ok || blob == "" {
		return "", nil
	}

	note, err := v.crypto.Decrypt(blob, password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptFailure, err)
	}

	return note, nil
}

func (v *CredentialVault) sealNote(password, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	blob, err := v.crypto.Encrypt(text, password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptFailure, err)
	}

	return blob, nil
}

func (v *CredentialVault) hash(password string) (string, error) {
	digest, err := v.crypto.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashFailure, err)
	}
	return digest, nil
}

// opLogger tags entries with the operation name and the op id found in ctx,
// or a fresh one.
func (v *CredentialVault) opLogger(ctx context.Context, op string) *zerolog.Logger {
	opID, ok := utils.GetOpIDFromContext(ctx)
	if !ok {
		opID = v.ids.Generate()
	}

	l := v.logger.With().
		Str("op", op).
		Str("op_id", opID).
		Logger()
	return &l
}
