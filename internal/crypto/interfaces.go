package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_provider_mock.go -package=mock

// CryptoProvider performs all cryptographic work of the credential vault.
// It knows nothing about storage; it only turns passwords into digests and
// notes into opaque blobs and back.
//
// Scheme (version 1):
//
//	Digest = "argon2id$v1$" + b64(Argon2id(password, SHA-256(credentialSalt)))
//	Key    = Argon2id(password, salt)                   (fresh salt per blob)
//	Blob   = b64(0x01 ‖ salt ‖ nonce ‖ AES-256-GCM(Key, nonce, note))
type CryptoProvider interface {
	// Hash returns the stable verification digest of input. The same input
	// always yields the same digest for a given credential salt, so digests
	// are compared byte for byte. Empty input is rejected.
	Hash(input string) (string, error)

	// Encrypt seals plaintext under a key derived from password and returns
	// the encoded blob. Empty plaintext is rejected.
	Encrypt(plaintext, password string) (string, error)

	// Decrypt opens a blob produced by Encrypt. A wrong password, a corrupted
	// blob and an unknown blob version all fail the same way.
	Decrypt(ciphertext, password string) (string, error)
}
