package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvMessage_RoundTrip(t *testing.T) {
	m := InvMessage{Items: []InvVect{
		{Type: InvTypeTx, Hash: makeTestHash(0x01)},
		{Type: InvTypeBlock, Hash: makeTestHash(0x02)},
	}}

	decoded, err := DecodeInvMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestGetDataMessage_RoundTrip(t *testing.T) {
	m := GetDataMessage{Items: []InvVect{{Type: InvTypeTx, Hash: makeTestHash(0x03)}}}
	decoded, err := DecodeGetDataMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestInvMessage_UnknownType(t *testing.T) {
	payload := EncodeVarInt(nil, 1)
	payload = PutUint32LE(payload, 99)
	payload = append(payload, makeTestHash(0x01)...)

	_, err := DecodeInvMessage(payload)
	assert.ErrorIs(t, err, ErrUnknownInventoryType)
}

func TestInvMessage_TooManyVectors(t *testing.T) {
	payload := EncodeVarInt(nil, MaxInventoryVectors+1)
	_, err := DecodeInvMessage(payload)
	assert.ErrorIs(t, err, ErrTooManyInventoryVectors)
}

func makeTestHash(seed byte) []byte {
	h := make([]byte, HashSize)
	for i := range h {
		h[i] = seed
	}
	return h
}
