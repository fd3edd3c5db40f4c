package crypto

import "errors"

var (
	// ErrEmptyInput is returned when Hash or Encrypt receive an empty string.
	ErrEmptyInput = errors.New("empty input")

	// ErrOpenBlob is returned by Decrypt for every failure: bad encoding,
	// short blob, unknown version or authentication-tag mismatch.
	ErrOpenBlob = errors.New("unable to open note blob")
)
