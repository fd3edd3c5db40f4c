// Package vault implements CredentialVault, the password and note manager of
// the notepad.
//
// The vault keeps two entries in a [store.PersistentStore]: the one-way
// digest of the current password and the note encrypted under that password.
// It never persists or logs a password or note plaintext. All cryptography is
// delegated to a [crypto.CryptoProvider].
//
// Password changes commit the re-encrypted note and the new digest in a
// single store write, so a failed change leaves the previous password and
// note usable.
package vault
