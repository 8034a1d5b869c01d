package models

// EncryptedPayload is the result of encrypting a note body at rest. The IV
// is the AES-GCM nonce; both halves are needed to decrypt.
type EncryptedPayload struct {
	Ciphertext []byte `json:"ciphertext"`
	IV         []byte `json:"iv"`
}
