// Package source encodes source image references into path segments.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"imgproxyurl/internal/core/codec"
	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/keys"
)

type Encoder struct {
	encryptionKey keys.EncryptionKey
}

type Option func(*Encoder)

// WithEncryptionKey enables the Encrypted mode.
func WithEncryptionKey(k keys.EncryptionKey) Option {
	return func(e *Encoder) {
		e.encryptionKey = k
	}
}

func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders ref, and the optional output extension, as the trailing
// segment of a path including its leading slash.
func (e *Encoder) Encode(ref domain.Reference, extension string) (string, error) {
	if ref.URL == "" {
		return "", fmt.Errorf("%w: mode %s", domain.ErrEmptySource, modeName(ref.Mode))
	}

	ext, err := normalizeExtension(extension)
	if err != nil {
		return "", err
	}

	switch ref.Mode {
	case domain.Safe, "":
		return "/" + codec.Encode([]byte(ref.URL)) + withSeparator(".", ext), nil
	case domain.Plain:
		return "/plain/" + Escape(ref.URL) + withSeparator("@", ext), nil
	case domain.Encrypted:
		if e.encryptionKey.Empty() {
			return "", fmt.Errorf("%w: encrypted sources need an encryption key", domain.ErrInvalidKey)
		}

		blob, err := encrypt(e.encryptionKey.Bytes(), []byte(ref.URL))
		if err != nil {
			return "", err
		}

		return "/enc/" + codec.Encode(blob) + withSeparator(".", ext), nil
	default:
		return "", &domain.OptionError{Name: "source.mode", Expected: "one of safe, plain, encrypted"}
	}
}

func modeName(m domain.Mode) string {
	if m == "" {
		return string(domain.Safe)
	}
	return string(m)
}

var extensionRe = regexp.MustCompile(`^[a-z0-9]+$`)

func normalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", nil
	}

	if !extensionRe.MatchString(ext) {
		return "", &domain.OptionError{Name: "extension", Expected: "letters and digits only"}
	}

	return ext, nil
}

func withSeparator(sep, ext string) string {
	if ext == "" {
		return ""
	}
	return sep + ext
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every byte of s outside the RFC 3986 unreserved set,
// '/', ':' and the sub-delims. '%', '?', '#', '@', spaces and non-ASCII bytes
// are therefore always escaped; '/' never is.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}

	return b.String()
}

func keep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("-._~/:!$&'()*+,;=", c) >= 0
}

var needsEncodingRe = regexp.MustCompile(`[@?% ]|[^\x00-\x7F]`)

// NeedsEncoding reports whether url contains characters that make the Safe
// mode preferable to Plain. It is advisory; Encode never switches modes.
func NeedsEncoding(url string) bool {
	return needsEncodingRe.MatchString(url)
}
