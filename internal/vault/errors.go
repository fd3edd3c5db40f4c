package vault

import (
	"errors"
	"fmt"
)

var (
	// ErrHashFailure is returned when the password digest cannot be computed.
	ErrHashFailure = errors.New("password hashing failed")

	// ErrEncryptFailure is returned when the note cannot be encrypted.
	ErrEncryptFailure = errors.New("note encryption failed")

	// ErrDecryptFailure is returned when the note cannot be decrypted. A wrong
	// password and a damaged note are reported the same way.
	ErrDecryptFailure = errors.New("note decryption failed")

	// ErrAlreadyEstablished is returned by Establish when a password is
	// already set.
	ErrAlreadyEstablished = errors.New("password already established")

	// ErrEmptyPassword is returned when an empty password would become the
	// stored credential.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrWrongPassword is returned when a password change is attempted with
	// a password that does not match the stored credential.
	ErrWrongPassword = errors.New("wrong password")

	// ErrStore wraps any failure of the underlying persistent store.
	ErrStore = errors.New("persistent store failure")

	// ErrRotationFailed matches every [*RotationError].
	ErrRotationFailed = errors.New("password change failed")
)

// RotationStage names the step of a password change that failed.
type RotationStage int

const (
	// ReadStage covers checking the old password and decrypting the note.
	ReadStage RotationStage = iota + 1
	// WriteStage covers encrypting the note under the new password and
	// persisting the result.
	WriteStage
	// CredentialStage covers computing the new password digest.
	CredentialStage
)

func (s RotationStage) String() string {
	switch s {
	case ReadStage:
		return "read"
	case WriteStage:
		return "write"
	case CredentialStage:
		return "credential"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// RotationError reports a failed password change. Whatever the stage, the
// stored credential and note are left exactly as they were before the call.
type RotationError struct {
	Stage RotationStage
	Err   error
}

func (e *RotationError) Error() string {
	return fmt.Sprintf("password change failed at %s stage: %v", e.Stage, e.Err)
}

func (e *RotationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRotationFailed) true for any stage.
func (e *RotationError) Is(target error) bool {
	return target == ErrRotationFailed
}

func rotationFailed(stage RotationStage, err error) error {
	return &RotationError{Stage: stage, Err: err}
}
