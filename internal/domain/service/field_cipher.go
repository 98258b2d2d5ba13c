package service

// FieldCipher encrypts and decrypts individual entity attributes so that
// confidential columns are ciphertext at rest and plaintext everywhere else.
// Implementations must be safe for concurrent use.
type FieldCipher interface {
	// Encrypt returns a self-contained, text-safe ciphertext for the given
	// plaintext. The empty string passes through unchanged.
	Encrypt(plaintext string) (string, error)

	// Decrypt is the inverse of Encrypt. The empty string passes through
	// unchanged. Ciphertext not produced under the current key, or tampered
	// with, fails with domainerrors.ErrDecryptFailed; it never yields
	// plausible-looking plaintext.
	Decrypt(ciphertext string) (string, error)
}
