package source

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"imgproxyurl/internal/core/domain"
)

// encrypt returns iv || AES-CBC(pkcs7(plaintext)). The IV is derived from the
// key and plaintext so equal inputs produce equal paths.
func encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidKey, err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(plaintext)
	iv := mac.Sum(nil)[:aes.BlockSize]

	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return out, nil
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}
