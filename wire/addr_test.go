package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrMessage_RoundTrip(t *testing.T) {
	m := AddrMessage{Addrs: []NetAddr{
		{Timestamp: 1700000000, Services: 1, IP: IPv4(10, 0, 0, 1), Port: 8333},
		{Timestamp: 1700000001, Services: 1, IP: IPv4(192, 168, 0, 1), Port: 18333},
	}}

	decoded, err := DecodeAddrMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestAddrMessage_Empty(t *testing.T) {
	m := AddrMessage{}
	decoded, err := DecodeAddrMessage(m.Encode())
	require.NoError(t, err)
	assert.Empty(t, decoded.Addrs)
}
