// Package keys holds the decoded signing and encryption key material.
package keys

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"imgproxyurl/internal/core/domain"
)

// Material is a signing key and salt decoded from hexadecimal. The zero value
// is the empty material, which disables signing.
type Material struct {
	key  []byte
	salt []byte
}

// New decodes key and salt. Both empty yields empty material and signing is
// skipped. A key without a salt, or a salt without a key, is rejected with
// ErrInvalidKey rather than silently producing unsigned URLs.
func New(keyHex, saltHex string) (Material, error) {
	key, err := decodeHex("key", keyHex)
	if err != nil {
		return Material{}, err
	}

	salt, err := decodeHex("salt", saltHex)
	if err != nil {
		return Material{}, err
	}

	if (len(key) == 0) != (len(salt) == 0) {
		return Material{}, fmt.Errorf("%w: key and salt must both be set or both be empty", domain.ErrInvalidKey)
	}

	return Material{key: key, salt: salt}, nil
}

// Empty reports whether the material carries no key, in which case URLs are
// left unsigned.
func (m Material) Empty() bool {
	return len(m.key) == 0
}

// Key returns a copy of the raw key bytes.
func (m Material) Key() []byte {
	return bytes.Clone(m.key)
}

// Salt returns a copy of the raw salt bytes.
func (m Material) Salt() []byte {
	return bytes.Clone(m.salt)
}

func (m Material) String() string {
	if m.Empty() {
		return "keys.Material(empty)"
	}
	return "keys.Material(redacted)"
}

func (m Material) GoString() string {
	return m.String()
}

// EncryptionKey is an AES key used for encrypted source references.
type EncryptionKey struct {
	key []byte
}

// NewEncryptionKey decodes a 16, 24 or 32 byte AES key from hexadecimal. An empty
// string yields the empty key.
func NewEncryptionKey(keyHex string) (EncryptionKey, error) {
	key, err := decodeHex("encryption key", keyHex)
	if err != nil {
		return EncryptionKey{}, err
	}

	switch len(key) {
	case 0, 16, 24, 32:
	default:
		return EncryptionKey{}, fmt.Errorf("%w: encryption key must be 16, 24 or 32 bytes, got %d",
			domain.ErrInvalidKey, len(key))
	}

	return EncryptionKey{key: key}, nil
}

func (k EncryptionKey) Empty() bool {
	return len(k.key) == 0
}

// Bytes returns a copy of the raw key bytes.
func (k EncryptionKey) Bytes() []byte {
	return bytes.Clone(k.key)
}

func (k EncryptionKey) String() string {
	if k.Empty() {
		return "keys.EncryptionKey(empty)"
	}
	return "keys.EncryptionKey(redacted)"
}

func (k EncryptionKey) GoString() string {
	return k.String()
}

func decodeHex(name, s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %s has odd length %d", domain.ErrInvalidKey, name, len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not hexadecimal: %w", domain.ErrInvalidKey, name, err)
	}

	return b, nil
}
