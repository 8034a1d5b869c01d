// SPDX-License-Identifier: Apache-2.0

// Package crypto holds the client-side encryption collaborator and the
// server-side password hasher. The sync engine is payload-agnostic: it moves
// note bodies around without knowing whether they are encrypted, so this
// package has no knowledge of notes, storage or transport.
package crypto

import "github.com/MKhiriev/go-note-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Encryptor protects note bodies at rest on the device.
//
// Scheme:
//
//	salt = GenerateSalt()               (stored next to the database)
//	key  = DeriveKey(passphrase, salt)  (Argon2id, exists only in memory)
//	blob = Encrypt(plaintext, key)      (AES-256-GCM, fresh IV per call)
type Encryptor interface {
	// GenerateSalt produces a random 16-byte salt. The salt is not a secret
	// and may be stored in plain sight; it only ensures identical
	// passphrases derive different keys.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives a 256-bit key from the passphrase and salt via
	// Argon2id.
	DeriveKey(passphrase string, salt []byte) []byte

	// Encrypt seals plaintext with key using AES-256-GCM under a fresh
	// random IV.
	Encrypt(plaintext, key []byte) (models.EncryptedPayload, error)

	// Decrypt opens a payload produced by Encrypt. Fails when the key is
	// wrong or the ciphertext was tampered with.
	Decrypt(payload models.EncryptedPayload, key []byte) ([]byte, error)
}

// PasswordHasher hashes account passwords for storage on the server.
type PasswordHasher interface {
	// Hash produces a self-describing encoded hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the encoded hash.
	Verify(password, encoded string) (bool, error)
}
