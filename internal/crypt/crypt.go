// Package crypt holds the key derivation and authenticated encryption
// primitives of the engine. Everything here is a pure function of its
// explicit inputs; randomness (salt, nonce) is generated by the caller-facing
// helpers and passed back in.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/pbkdf2"
)

const (
	KeyLen   = 32 // AES-256
	SaltLen  = 16
	NonceLen = 12

	// TagLen is the GCM authentication tag appended to every ciphertext.
	TagLen = 16

	// DefaultIterations is the PBKDF2 cost fixed by the version-1 format.
	// Encode and decode must use the same count.
	DefaultIterations = 200_000
)

// ErrAuthentication is returned when GCM tag verification fails. A wrong
// passphrase and tampered ciphertext are indistinguishable here on purpose.
var ErrAuthentication = errors.New("authentication failed")

// DeriveKey stretches a passphrase into a 32-byte AES key via
// PBKDF2-HMAC-SHA256. Deterministic for a given (passphrase, salt,
// iterations) triple, so decode reproduces the encode key once the salt is
// recovered from the header.
func DeriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, KeyLen, sha256.New)
}

// NewSalt returns SaltLen fresh random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// NewNonce returns NonceLen fresh random bytes. Regenerated per encode so it
// never repeats under the same key.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt seals plaintext under key/nonce with AES-256-GCM, tag appended.
func Encrypt(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext+tag produced by Encrypt. Any modification of
// ciphertext, tag or nonce yields ErrAuthentication, never partial plaintext.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("invalid key length: expected %d bytes, got %d", KeyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Zero overwrites sensitive byte material once an operation is done with it.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
