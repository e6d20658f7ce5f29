// Package codec implements the URL-safe, unpadded base64 variant used for
// signatures and encoded source references.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"imgproxyurl/internal/core/domain"
)

var encoding = base64.RawURLEncoding.Strict()

// Encode returns the standard base64 encoding of b with '-' and '_' in place of
// '+' and '/' and without trailing padding.
func Encode(b []byte) string {
	return encoding.EncodeToString(b)
}

// Decode reverses Encode. Trailing '=' padding is tolerated when it is the
// padding the standard encoding would emit for the input length. Line breaks
// and non-zero trailing bits are rejected.
func Decode(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("%w: line break in input", domain.ErrEncoding)
	}

	trimmed := strings.TrimRight(s, "=")
	if pad := len(s) - len(trimmed); pad > 0 && (pad > 2 || len(s)%4 != 0) {
		return nil, fmt.Errorf("%w: %d padding characters for %d symbols", domain.ErrEncoding, pad, len(trimmed))
	}

	b, err := encoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}

	return b, nil
}
