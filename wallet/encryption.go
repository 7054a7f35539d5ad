package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for wallet file encryption.
const (
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // 64 MB
	argon2Parallelism = 4
	argon2KeyLen      = 32

	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// encryptBlob encrypts plaintext with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, plaintext||checksum)
//
// The checksum is SHA256(plaintext)[:4], checked on decrypt to distinguish
// a wrong password from a structurally valid but garbage payload.
func encryptBlob(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	derivedKey := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)

	sum := sha256.Sum256(plaintext)
	checksum := sum[:checksumLen]

	payload := make([]byte, 0, len(plaintext)+checksumLen)
	payload = append(payload, plaintext...)
	payload = append(payload, checksum...)

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nil, nonce, payload, nil)

	result := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// decryptBlob reverses encryptBlob, returning ErrDecryptionFailed for a
// malformed payload or wrong password, and ErrChecksumMismatch if AES-GCM
// authenticates but the embedded checksum does not match (should not
// happen absent a bug, since GCM already authenticates the payload).
func decryptBlob(encrypted []byte, password string) ([]byte, error) {
	minLen := saltLen + nonceLen + checksumLen
	if len(encrypted) < minLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:saltLen]
	nonce := encrypted[saltLen : saltLen+nonceLen]
	ciphertext := encrypted[saltLen+nonceLen:]

	derivedKey := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	payload, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(payload) < checksumLen {
		return nil, ErrDecryptionFailed
	}

	plaintext := payload[:len(payload)-checksumLen]
	storedChecksum := payload[len(payload)-checksumLen:]

	sum := sha256.Sum256(plaintext)
	expectedChecksum := sum[:checksumLen]
	for i := 0; i < checksumLen; i++ {
		if storedChecksum[i] != expectedChecksum[i] {
			return nil, ErrChecksumMismatch
		}
	}

	return plaintext, nil
}
