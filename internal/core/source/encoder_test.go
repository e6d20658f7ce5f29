package source

import (
	"crypto/aes"
	"crypto/cipher"
	"strings"
	"testing"

	"imgproxyurl/internal/core/codec"
	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aes256Hex = "1eb5b0e971ad7f45324c1bb15c947cb207c43152fa5c6c7f35c4f36e0c18e0f1"

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		ref       domain.Reference
		extension string
		want      string
		wantErr   error
	}{
		{
			name: "safe",
			ref:  domain.Reference{URL: "https://example.com/image.jpg", Mode: domain.Safe},
			want: "/aHR0cHM6Ly9leGFtcGxlLmNvbS9pbWFnZS5qcGc",
		},
		{
			name: "zero mode is safe",
			ref:  domain.Reference{URL: "https://example.com/image.jpg"},
			want: "/aHR0cHM6Ly9leGFtcGxlLmNvbS9pbWFnZS5qcGc",
		},
		{
			name:      "safe with extension",
			ref:       domain.Reference{URL: "https://example.com/image.jpg", Mode: domain.Safe},
			extension: "png",
			want:      "/aHR0cHM6Ly9leGFtcGxlLmNvbS9pbWFnZS5qcGc.png",
		},
		{
			name:      "extension normalised",
			ref:       domain.Reference{URL: "https://example.com/image.jpg", Mode: domain.Safe},
			extension: ".WEBP",
			want:      "/aHR0cHM6Ly9leGFtcGxlLmNvbS9pbWFnZS5qcGc.webp",
		},
		{
			name: "plain",
			ref:  domain.Reference{URL: "https://example.com/image.jpg", Mode: domain.Plain},
			want: "/plain/https://example.com/image.jpg",
		},
		{
			name:      "plain with extension",
			ref:       domain.Reference{URL: "https://example.com/image.jpg", Mode: domain.Plain},
			extension: "png",
			want:      "/plain/https://example.com/image.jpg@png",
		},
		{
			name: "plain escapes query and at",
			ref:  domain.Reference{URL: "s3://bucket/a b@2x.png?v=1", Mode: domain.Plain},
			want: "/plain/s3://bucket/a%20b%402x.png%3Fv=1",
		},
		{
			name: "plain escapes non-ascii and percent",
			ref:  domain.Reference{URL: "http://x/é%20", Mode: domain.Plain},
			want: "/plain/http://x/%C3%A9%2520",
		},
		{
			name:    "empty safe",
			ref:     domain.Reference{Mode: domain.Safe},
			wantErr: domain.ErrEmptySource,
		},
		{
			name:    "empty plain",
			ref:     domain.Reference{Mode: domain.Plain},
			wantErr: domain.ErrEmptySource,
		},
		{
			name:    "empty encrypted",
			ref:     domain.Reference{Mode: domain.Encrypted},
			wantErr: domain.ErrEmptySource,
		},
		{
			name:    "encrypted without key",
			ref:     domain.Reference{URL: "http://x/y.png", Mode: domain.Encrypted},
			wantErr: domain.ErrInvalidKey,
		},
		{
			name:      "bad extension",
			ref:       domain.Reference{URL: "http://x/y.png"},
			extension: "p/ng",
			wantErr:   domain.ErrInvalidOption,
		},
		{
			name:    "unknown mode",
			ref:     domain.Reference{URL: "http://x/y.png", Mode: "base32"},
			wantErr: domain.ErrInvalidOption,
		},
	}

	e := NewEncoder()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Encode(tc.ref, tc.extension)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeEncrypted(t *testing.T) {
	k, err := keys.NewEncryptionKey(aes256Hex)
	require.NoError(t, err)

	e := NewEncoder(WithEncryptionKey(k))
	ref := domain.Reference{URL: "http://example.com/images/curiosity.jpg", Mode: domain.Encrypted}

	got, err := e.Encode(ref, "png")
	require.NoError(t, err)

	again, err := e.Encode(ref, "png")
	require.NoError(t, err)
	assert.Equal(t, got, again, "encryption must be deterministic")

	require.True(t, strings.HasPrefix(got, "/enc/"))
	require.True(t, strings.HasSuffix(got, ".png"))

	blob, err := codec.Decode(strings.TrimSuffix(strings.TrimPrefix(got, "/enc/"), ".png"))
	require.NoError(t, err)
	require.Zero(t, len(blob)%aes.BlockSize)

	block, err := aes.NewCipher(k.Bytes())
	require.NoError(t, err)

	plain := make([]byte, len(blob)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, blob[:aes.BlockSize]).CryptBlocks(plain, blob[aes.BlockSize:])

	n := int(plain[len(plain)-1])
	assert.Equal(t, ref.URL, string(plain[:len(plain)-n]))

	other, err := e.Encode(domain.Reference{URL: ref.URL + "?v=2", Mode: domain.Encrypted}, "png")
	require.NoError(t, err)
	assert.NotEqual(t, got, other)
}

func TestPad(t *testing.T) {
	assert.Len(t, pad(make([]byte, 15), 16), 16)
	assert.Len(t, pad(make([]byte, 16), 16), 32)
	assert.Equal(t, byte(16), pad(nil, 16)[15])
}

func TestNeedsEncoding(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://example.com/image.jpg", want: false},
		{url: "https://example.com/image.jpg?size=1", want: true},
		{url: "https://example.com/a b.jpg", want: true},
		{url: "https://example.com/img@2x.jpg", want: true},
		{url: "https://example.com/%20.jpg", want: true},
		{url: "https://example.com/ü.jpg", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, NeedsEncoding(tc.url))
		})
	}
}
