package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptBlob_RoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	encrypted, err := encryptBlob(plaintext, "correct horse battery staple")
	require.NoError(t, err)

	decrypted, err := decryptBlob(encrypted, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptBlob_WrongPasswordFails(t *testing.T) {
	encrypted, err := encryptBlob([]byte("secret"), "right")
	require.NoError(t, err)

	_, err = decryptBlob(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptBlob_TruncatedFails(t *testing.T) {
	_, err := decryptBlob([]byte("too short"), "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
