// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Digest v1 parameters. They are part of the stored format: changing any of
// them makes existing credentials unverifiable and needs a new version tag.
const (
	digestPrefix  = "argon2id$v1$"
	digestTime    = 2
	digestMemory  = 19 * 1024 // 19 MiB
	digestThreads = 1
	digestKeyLen  = 32
)

const (
	blobVersion = 0x01
	saltLen     = 16
	keyLen      = 32 // AES-256

	// version ‖ time ‖ memory ‖ threads
	headerLen = 1 + 4 + 4 + 1

	// upper bounds accepted from a blob header
	maxBlobTime   = 64
	maxBlobMemory = 4 * 1024 * 1024 // 4 GiB
)

var noteAAD = []byte("notepad-note-v1")

// Params configures a [CryptoProvider].
type Params struct {
	// CredentialSalt domain-separates the verification digest.
	CredentialSalt string
	// Time, MemoryKiB and Threads are the Argon2id costs of new note keys.
	// Every blob records the costs it was sealed with, so changing them
	// does not affect existing notes.
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// argonProvider is the private implementation of [CryptoProvider].
type argonProvider struct {
	credentialSalt []byte

	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8

	random io.Reader
}

// NewCryptoProvider constructs a [CryptoProvider] for the given parameters.
// Zero note costs fall back to the OWASP (2024) Argon2id recommendation of
// 1 iteration, 64 MiB and 4 lanes.
func NewCryptoProvider(params Params) CryptoProvider {
	saltSum := sha256.Sum256([]byte(params.CredentialSalt))

	p := &argonProvider{
		credentialSalt: saltSum[:],
		argonTime:      params.Time,
		argonMemory:    params.MemoryKiB,
		argonThreads:   params.Threads,
		random:         rand.Reader,
	}
	if p.argonTime == 0 {
		p.argonTime = 1
	}
	if p.argonMemory == 0 {
		p.argonMemory = 64 * 1024
	}
	if p.argonThreads == 0 {
		p.argonThreads = 4
	}
	// keep every blob this provider writes readable
	p.argonTime = min(p.argonTime, maxBlobTime)
	p.argonMemory = min(max(p.argonMemory, 8*uint32(p.argonThreads)), maxBlobMemory)

	return p
}

// Hash implements [CryptoProvider].
func (p *argonProvider) Hash(input string) (string, error) {
	if input == "" {
		return "", ErrEmptyInput
	}

	sum := argon2.IDKey([]byte(input), p.credentialSalt, digestTime, digestMemory, digestThreads, digestKeyLen)
	return digestPrefix + base64.RawStdEncoding.EncodeToString(sum), nil
}

// Encrypt implements [CryptoProvider]. A random salt and nonce are drawn for
// every call, so encrypting the same note twice yields different blobs.
func (p *argonProvider) Encrypt(plaintext, password string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyInput
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(p.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	costs := kdfCosts{time: p.argonTime, memory: p.argonMemory, threads: p.argonThreads}
	gcm, err := newGCM(password, salt, costs)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(p.random, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// blob: header ‖ salt ‖ nonce ‖ ciphertext
	header := costs.header()
	blob := make([]byte, 0, headerLen+saltLen+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, header...)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), blobAAD(header))

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CryptoProvider]. The key is derived with the costs
// recorded in the blob, not the configured ones. Every failure is reported as
// [ErrOpenBlob] so callers cannot tell a wrong password from a damaged blob.
func (p *argonProvider) Decrypt(ciphertext, password string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrOpenBlob
	}

	if len(blob) < headerLen+saltLen {
		return "", ErrOpenBlob
	}
	header := blob[:headerLen]
	costs, ok := parseHeader(header)
	if !ok {
		return "", ErrOpenBlob
	}
	salt := blob[headerLen : headerLen+saltLen]

	gcm, err := newGCM(password, salt, costs)
	if err != nil {
		return "", ErrOpenBlob
	}

	rest := blob[headerLen+saltLen:]
	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize+gcm.Overhead() {
		return "", ErrOpenBlob
	}
	nonce, sealed := rest[:nonceSize], rest[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, blobAAD(header))
	if err != nil {
		return "", ErrOpenBlob
	}

	return string(plaintext), nil
}

// kdfCosts are the Argon2id costs of one note key.
type kdfCosts struct {
	time    uint32
	memory  uint32
	threads uint8
}

func (c kdfCosts) header() []byte {
	h := make([]byte, headerLen)
	h[0] = blobVersion
	binary.BigEndian.PutUint32(h[1:5], c.time)
	binary.BigEndian.PutUint32(h[5:9], c.memory)
	h[9] = c.threads
	return h
}

// parseHeader rejects unknown versions and costs no sane provider writes.
func parseHeader(h []byte) (kdfCosts, bool) {
	if h[0] != blobVersion {
		return kdfCosts{}, false
	}
	c := kdfCosts{
		time:    binary.BigEndian.Uint32(h[1:5]),
		memory:  binary.BigEndian.Uint32(h[5:9]),
		threads: h[9],
	}
	if c.time == 0 || c.time > maxBlobTime || c.threads == 0 ||
		c.memory < 8*uint32(c.threads) || c.memory > maxBlobMemory {
		return kdfCosts{}, false
	}
	return c, true
}

// blobAAD binds the header to the ciphertext.
func blobAAD(header []byte) []byte {
	aad := make([]byte, 0, len(noteAAD)+len(header))
	aad = append(aad, noteAAD...)
	return append(aad, header...)
}

func newGCM(password string, salt []byte, costs kdfCosts) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, costs.time, costs.memory, costs.threads, keyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
