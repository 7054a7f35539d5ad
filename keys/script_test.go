package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayToAddressScript_IsRecognizable(t *testing.T) {
	pubKeyHash := make([]byte, 20)
	for i := range pubKeyHash {
		pubKeyHash[i] = byte(i)
	}

	s, err := PayToAddressScript(pubKeyHash)
	require.NoError(t, err)

	got, ok := IsPayToAddressScript(s.Bytes())
	require.True(t, ok)
	assert.Equal(t, pubKeyHash, got)
}

func TestPayToAddressScript_WrongLengthHashRejected(t *testing.T) {
	_, err := PayToAddressScript(make([]byte, 21))
	assert.ErrorIs(t, err, ErrInvalidPubKeyHash)
}

func TestIsPayToAddressScript_RejectsArbitraryBytes(t *testing.T) {
	_, ok := IsPayToAddressScript([]byte{0x51})
	assert.False(t, ok)
}
