// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := NewEncryptor()

	salt, err := e.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 16)

	key := e.DeriveKey("correct horse battery staple", salt)
	require.Len(t, key, 32)

	plaintext := []byte("meeting notes: discuss q3 roadmap")
	payload, err := e.Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.Ciphertext)
	assert.Len(t, payload.IV, 12)
	assert.NotEqual(t, plaintext, payload.Ciphertext)

	got, err := e.Decrypt(payload, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecrypt_WrongKey(t *testing.T) {
	e := NewEncryptor()

	salt, err := e.GenerateSalt()
	require.NoError(t, err)

	key := e.DeriveKey("right passphrase", salt)
	payload, err := e.Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	wrongKey := e.DeriveKey("wrong passphrase", salt)
	_, err = e.Decrypt(payload, wrongKey)
	require.Error(t, err)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	e := NewEncryptor()

	salt, err := e.GenerateSalt()
	require.NoError(t, err)
	key := e.DeriveKey("passphrase", salt)

	payload, err := e.Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	payload.Ciphertext[0] ^= 0xff
	_, err = e.Decrypt(payload, key)
	require.Error(t, err)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	e := NewEncryptor()

	salt, err := e.GenerateSalt()
	require.NoError(t, err)

	first := e.DeriveKey("passphrase", salt)
	second := e.DeriveKey("passphrase", salt)
	assert.Equal(t, first, second)

	otherSalt, err := e.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, first, e.DeriveKey("passphrase", otherSalt))
}

func TestEncrypt_FreshIVPerCall(t *testing.T) {
	e := NewEncryptor()

	salt, err := e.GenerateSalt()
	require.NoError(t, err)
	key := e.DeriveKey("passphrase", salt)

	first, err := e.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)
	second, err := e.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher()

	encoded, err := h.Hash("s3cret-password")
	require.NoError(t, err)
	require.Contains(t, encoded, "$argon2id$")

	ok, err := h.Verify("s3cret-password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher()

	_, err := h.Verify("password", "not-a-hash")
	require.Error(t, err)
}
