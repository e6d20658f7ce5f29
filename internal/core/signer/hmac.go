// Package signer computes path signatures for the remote image service.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"imgproxyurl/internal/core/codec"
	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/keys"
)

const MaxSize = sha256.Size

// HMAC signs paths with HMAC-SHA256 over salt || path.
type HMAC struct {
	key  []byte
	salt []byte
	size int
}

type Option func(*HMAC)

// WithSize truncates signatures to n bytes of digest before encoding.
func WithSize(n int) Option {
	return func(h *HMAC) {
		h.size = n
	}
}

func New(material keys.Material, opts ...Option) (*HMAC, error) {
	h := &HMAC{
		key:  material.Key(),
		salt: material.Salt(),
		size: MaxSize,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.size < 1 || h.size > MaxSize {
		return nil, fmt.Errorf("%w: %d, must be between 1 and %d", domain.ErrInvalidSignatureSize, h.size, MaxSize)
	}

	return h, nil
}

func (h *HMAC) Enabled() bool {
	return len(h.key) > 0
}

func (h *HMAC) Size() int {
	return h.size
}

func (h *HMAC) Sign(path string) string {
	if !h.Enabled() {
		return domain.InsecureSignature
	}

	return codec.Encode(h.digest(path))
}

func (h *HMAC) Verify(path, signature string) error {
	if !h.Enabled() {
		if signature != domain.InsecureSignature {
			return fmt.Errorf("%w: signing is disabled, expected %q", domain.ErrSignatureMismatch,
				domain.InsecureSignature)
		}
		return nil
	}

	got, err := codec.Decode(signature)
	if err != nil {
		return err
	}

	if !hmac.Equal(got, h.digest(path)) {
		return domain.ErrSignatureMismatch
	}

	return nil
}

func (h *HMAC) digest(path string) []byte {
	mac := hmac.New(sha256.New, h.key)
	mac.Write(h.salt)
	mac.Write([]byte(path))

	return mac.Sum(nil)[:h.size]
}
