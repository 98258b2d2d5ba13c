package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

func cipherConfig(key string) *config.Config {
	cfg := &config.Config{}
	cfg.Encryption.FieldKey = key

	return cfg
}

func testCipher(t *testing.T, raw []byte) service.FieldCipher {
	t.Helper()

	c, err := NewFieldCipher(cipherConfig(base64.URLEncoding.EncodeToString(raw)))
	require.NoError(t, err)

	return c
}

func testKey(fill byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = fill
	}

	return key
}

func TestNewFieldCipher_InvalidKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"too short", base64.URLEncoding.EncodeToString(make([]byte, 16))},
		{"too long", base64.URLEncoding.EncodeToString(make([]byte, 48))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFieldCipher(cipherConfig(tt.key))
			assert.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, domainerrors.ErrMissingSecret))
		})
	}
}

func TestFieldCipher_Roundtrip(t *testing.T) {
	c := testCipher(t, testKey(0x41))

	plaintext := "Jane Doe"
	ciphertext, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := c.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestFieldCipher_EmptyPassthrough(t *testing.T) {
	c := testCipher(t, testKey(0x41))

	ciphertext, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", ciphertext)

	plaintext, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestFieldCipher_UniqueNonces(t *testing.T) {
	c := testCipher(t, testKey(0x41))

	first, err := c.Encrypt("same value")
	require.NoError(t, err)
	second, err := c.Encrypt("same value")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFieldCipher_WrongKeyFails(t *testing.T) {
	writer := testCipher(t, testKey(0x41))
	reader := testCipher(t, testKey(0x42))

	ciphertext, err := writer.Encrypt("confidential observation")
	require.NoError(t, err)

	plaintext, err := reader.Decrypt(ciphertext)
	assert.Empty(t, plaintext)
	assert.True(t, errors.Is(err, domainerrors.ErrDecryptFailed))
}

func TestFieldCipher_TamperedCiphertextFails(t *testing.T) {
	c := testCipher(t, testKey(0x41))

	ciphertext, err := c.Encrypt("confidential observation")
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	tampered := base64.URLEncoding.EncodeToString(raw)

	plaintext, err := c.Decrypt(tampered)
	assert.Empty(t, plaintext)
	assert.True(t, errors.Is(err, domainerrors.ErrDecryptFailed))
}

func TestFieldCipher_GarbageInputFails(t *testing.T) {
	c := testCipher(t, testKey(0x41))

	for _, input := range []string{"not base64 at all!", base64.URLEncoding.EncodeToString([]byte("x"))} {
		plaintext, err := c.Decrypt(input)
		assert.Empty(t, plaintext)
		assert.True(t, errors.Is(err, domainerrors.ErrDecryptFailed))
	}
}
