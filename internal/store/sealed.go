// ABOUTME: Encrypting KV wrapper that seals values at rest with NaCl secretbox
// ABOUTME: Keys derive from a passphrase with Argon2id and a random salt kept in the inner store

package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	nonceSize = 24
	saltSize  = 16

	// SaltKey holds the base64 key-derivation salt of a sealed store. It is
	// stored in clear text next to the sealed values.
	SaltKey = "sealSalt"
)

// Argon2id cost parameters (RFC 9106 second recommended option).
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrSealBroken is returned when a stored value cannot be opened with the
// configured passphrase.
var ErrSealBroken = errors.New("sealed value could not be opened")

// Sealed wraps a KV and encrypts every value before it reaches the inner store.
type Sealed struct {
	inner KV
	key   [32]byte
}

// NewSealed wraps inner, deriving the secretbox key from passphrase and the
// store's salt. The first call on an empty store generates and saves the salt.
func NewSealed(ctx context.Context, inner KV, passphrase string) (*Sealed, error) {
	if passphrase == "" {
		return nil, errors.New("passphrase is required")
	}

	salt, err := loadSalt(ctx, inner)
	if err != nil {
		return nil, err
	}

	s := &Sealed{inner: inner}
	copy(s.key[:], argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, uint32(len(s.key))))
	return s, nil
}

// loadSalt returns the salt stored in kv, creating one if there is none.
func loadSalt(ctx context.Context, kv KV) ([]byte, error) {
	raw, err := kv.Get(ctx, SaltKey)
	if err == nil {
		salt, decodeErr := base64.StdEncoding.DecodeString(raw)
		if decodeErr != nil || len(salt) < saltSize {
			return nil, fmt.Errorf("%w: bad salt", ErrSealBroken)
		}
		return salt, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("loading salt: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	if err := kv.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("saving salt: %w", err)
	}
	return salt, nil
}

// Get opens the value stored under key.
func (s *Sealed) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	box, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize {
		return "", ErrSealBroken
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealBroken
	}
	return string(plain), nil
}

// Set seals value with a fresh random nonce and stores it under key.
// If the currently stored value already opens to value, nothing is written.
func (s *Sealed) Set(ctx context.Context, key, value string) error {
	if current, err := s.Get(ctx, key); err == nil && current == value {
		return nil
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(box))
}

// UpdatedAt reports when key was last changed in the inner store. It returns
// errors.ErrUnsupported when the inner store keeps no timestamps.
func (s *Sealed) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	ts, ok := s.inner.(Timestamper)
	if !ok {
		return time.Time{}, errors.ErrUnsupported
	}
	return ts.UpdatedAt(ctx, key)
}

// Delete removes key from the inner store.
func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Close closes the inner store.
func (s *Sealed) Close() error {
	return s.inner.Close()
}

var (
	_ KV          = (*Sealed)(nil)
	_ Timestamper = (*Sealed)(nil)
)
