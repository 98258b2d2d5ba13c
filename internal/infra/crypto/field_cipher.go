// Package crypto implements authenticated field-level encryption for
// confidential database columns using AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
)

const keySize = 32

// fieldCipher encrypts individual string values under a single process-wide
// key. Ciphertext layout is nonce || sealed, URL-safe base64 encoded so it can
// live in ordinary text columns. There is no key rotation: changing the key
// invalidates all previously encrypted data.
type fieldCipher struct {
	gcm cipher.AEAD
}

// NewFieldCipher builds a FieldCipher from the configured key, which must be
// 32 bytes encoded as URL-safe base64. A missing or malformed key fails with
// ErrMissingSecret.
func NewFieldCipher(cfg *config.Config) (service.FieldCipher, error) {
	if cfg.Encryption.FieldKey == "" {
		return nil, domainerrors.ErrMissingSecret.WrapMessage("field encryption key is empty")
	}

	key, err := base64.URLEncoding.DecodeString(cfg.Encryption.FieldKey)
	if err != nil {
		return nil, domainerrors.ErrMissingSecret.WrapMessage("field encryption key is not valid url-safe base64")
	}
	if len(key) != keySize {
		return nil, domainerrors.ErrMissingSecret.WrapMessage("field encryption key must decode to 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return &fieldCipher{gcm: gcm}, nil
}

// Encrypt seals the plaintext under a fresh random nonce. The empty string
// passes through unchanged so absent values stay absent.
func (c *fieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	// Seal appends the encrypted data to nonce, returning nonce || ciphertext || tag.
	sealed := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Anything not produced under
// the current key, or tampered with, fails with ErrDecryptFailed; garbage is
// never returned as plaintext.
func (c *fieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return ciphertext, nil
	}

	buffer, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", domainerrors.ErrDecryptFailed.WrapMessage("ciphertext is not valid url-safe base64")
	}

	nonceSize := c.gcm.NonceSize()
	if len(buffer) < nonceSize {
		return "", domainerrors.ErrDecryptFailed.WrapMessage("ciphertext too short")
	}

	nonce, sealed := buffer[:nonceSize], buffer[nonceSize:]

	plain, err := c.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", domainerrors.ErrDecryptFailed.WrapMessage("authentication failed")
	}

	return string(plain), nil
}
