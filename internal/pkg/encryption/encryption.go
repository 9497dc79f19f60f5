// Package encryption encrypts short secrets (one-time codes) at rest.
// The key is derived once per process from a password and a salt.
package encryption

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/sync/singleflight"
)

var (
	ErrMissingKey    = errors.New("APP_ENCRYPTION_KEY is not set")
	ErrMissingSalt   = errors.New("APP_ENCRYPTION_SALT is not set")
	ErrInvalidFormat = errors.New("invalid encrypted data format")
)

// scrypt parameters
const (
	scryptN   = 1 << 15
	scryptR   = 8
	scryptP   = 1
	keyLength = chacha20poly1305.KeySize
)

// DeriveFunc turns the configured secrets into an AEAD key
type DeriveFunc func(password, salt []byte) ([]byte, error)

// Scrypt is the default key derivation
func Scrypt(password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, scryptN, scryptR, scryptP, keyLength)
}

// Service encrypts and decrypts with XChaCha20-Poly1305.
// Concurrent first callers share a single key derivation.
type Service struct {
	password []byte
	salt     []byte
	derive   DeriveFunc

	group singleflight.Group
	mu    sync.RWMutex
	aead  cipher.AEAD
}

// New creates a service; the key is derived lazily or by Warmup
func New(password, salt string) (*Service, error) {
	return NewWithDerive(password, salt, Scrypt)
}

// NewWithDerive creates a service with a custom key derivation
func NewWithDerive(password, salt string, derive DeriveFunc) (*Service, error) {
	if password == "" {
		return nil, ErrMissingKey
	}
	if salt == "" {
		return nil, ErrMissingSalt
	}
	return &Service{
		password: []byte(password),
		salt:     []byte(salt),
		derive:   derive,
	}, nil
}

// Warmup derives the key ahead of the first request
func (s *Service) Warmup(ctx context.Context) error {
	_, err := s.cipher(ctx)
	return err
}

// cipher returns the cached AEAD, deriving it on first use.
// A failed derivation is not cached.
func (s *Service) cipher(ctx context.Context) (cipher.AEAD, error) {
	s.mu.RLock()
	aead := s.aead
	s.mu.RUnlock()
	if aead != nil {
		return aead, nil
	}

	ch := s.group.DoChan("key", func() (interface{}, error) {
		s.mu.RLock()
		cached := s.aead
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		key, err := s.derive(s.password, s.salt)
		if err != nil {
			return nil, fmt.Errorf("derive encryption key: %w", err)
		}
		a, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("init cipher: %w", err)
		}

		s.mu.Lock()
		s.aead = a
		s.mu.Unlock()
		return a, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(cipher.AEAD), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Encrypt returns hex(nonce):hex(ciphertext)
func (s *Service) Encrypt(ctx context.Context, plaintext string) (string, error) {
	aead, err := s.cipher(ctx)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt
func (s *Service) Decrypt(ctx context.Context, encoded string) (string, error) {
	aead, err := s.cipher(ctx)
	if err != nil {
		return "", err
	}

	parts := strings.Split(encoded, ":")
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}
	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != aead.NonceSize() {
		return "", ErrInvalidFormat
	}
	sealed, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidFormat
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plain), nil
}
