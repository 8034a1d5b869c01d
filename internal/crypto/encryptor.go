// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
	"golang.org/x/crypto/argon2"
)

// aesGCMEncryptor is the private implementation of [Encryptor].
type aesGCMEncryptor struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target (e.g. mobile vs. desktop).
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewEncryptor constructs an [Encryptor] with the Argon2id parameters
// recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewEncryptor() Encryptor {
	return &aesGCMEncryptor{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateSalt implements [Encryptor]. It reads 16 random bytes from the OS
// CSPRNG.
func (e *aesGCMEncryptor) GenerateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [Encryptor]. The derived key exists only in client
// memory and is never persisted or transmitted.
func (e *aesGCMEncryptor) DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		e.argonTime,
		e.argonMemory,
		e.argonThreads,
		e.argonKeyLen,
	)
}

// Encrypt implements [Encryptor]. The IV is a random 12-byte GCM nonce,
// returned alongside the ciphertext so Decrypt can locate it.
func (e *aesGCMEncryptor) Encrypt(plaintext, key []byte) (models.EncryptedPayload, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptedPayload{}, err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("generate iv: %w", err)
	}

	return models.EncryptedPayload{
		Ciphertext: gcm.Seal(nil, iv, plaintext, nil),
		IV:         iv,
	}, nil
}

// Decrypt implements [Encryptor]. An authentication-tag mismatch almost
// always means a wrong passphrase produced a wrong key.
func (e *aesGCMEncryptor) Decrypt(payload models.EncryptedPayload, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(payload.IV) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid iv length %d", len(payload.IV))
	}

	plaintext, err := gcm.Open(nil, payload.IV, payload.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
