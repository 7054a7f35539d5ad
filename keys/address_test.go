package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAddress_RoundTrip(t *testing.T) {
	pubKeyHash := make([]byte, 20)
	for i := range pubKeyHash {
		pubKeyHash[i] = byte(i + 1)
	}

	addr, err := EncodeAddress(pubKeyHash, MainnetAddressVersion)
	require.NoError(t, err)

	gotHash, gotVersion, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, pubKeyHash, gotHash)
	assert.Equal(t, MainnetAddressVersion, gotVersion)
}

func TestEncodeAddress_WrongLengthRejected(t *testing.T) {
	_, err := EncodeAddress(make([]byte, 19), MainnetAddressVersion)
	assert.ErrorIs(t, err, ErrInvalidPubKeyHash)
}

func TestDecodeAddress_BadChecksumRejected(t *testing.T) {
	pubKeyHash := make([]byte, 20)
	addr, err := EncodeAddress(pubKeyHash, MainnetAddressVersion)
	require.NoError(t, err)

	// Flip the address' last character, corrupting the checksum.
	corrupted := []byte(addr)
	if corrupted[len(corrupted)-1] == 'a' {
		corrupted[len(corrupted)-1] = 'b'
	} else {
		corrupted[len(corrupted)-1] = 'a'
	}

	_, _, err = DecodeAddress(string(corrupted))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecodeAddress_WrongLengthRejected(t *testing.T) {
	_, _, err := DecodeAddress("1")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestEncodeAddress_TestnetVersion(t *testing.T) {
	pubKeyHash := make([]byte, 20)
	addr, err := EncodeAddress(pubKeyHash, TestnetAddressVersion)
	require.NoError(t, err)

	_, version, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, TestnetAddressVersion, version)
}
