package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionMessage_RoundTrip(t *testing.T) {
	m := VersionMessage{
		ProtocolVersion: 70015,
		Services:        1,
		Timestamp:       1700000000,
		AddrRecv:        NetAddr{Services: 1, IP: IPv4(10, 0, 0, 1), Port: 8333},
		AddrFrom:        NetAddr{Services: 1, IP: IPv4(127, 0, 0, 1), Port: 8333},
		Nonce:           0x0102030405060708,
		SubVersion:      "/spvpeer:0.1/",
		StartHeight:     42,
	}

	decoded, err := DecodeVersionMessage(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestNegotiateVersion(t *testing.T) {
	assert.Equal(t, int32(70001), NegotiateVersion(70015, 70001))
	assert.Equal(t, int32(70001), NegotiateVersion(70001, 70015))
}

func TestVerackMessage_EmptyPayload(t *testing.T) {
	assert.Nil(t, VerackMessage{}.Encode())
}

// TestPeerAddressFixture is spec §8 fixture 1: a 26-byte version-style
// address record decodes to IPv4 10.0.0.1:8333 with services=1 and
// reserializes byte-identically.
func TestPeerAddressFixture(t *testing.T) {
	raw := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // services = 1
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0x0a, 0x00, 0x00, 0x01, // ::ffff:10.0.0.1
		0x20, 0x8d, // port 8333, big-endian
	}

	addr, err := DecodeVersionAddr(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), addr.Services)
	assert.Equal(t, IPv4(10, 0, 0, 1), addr.IP)
	assert.Equal(t, uint16(8333), addr.Port)

	reencoded := EncodeVersionAddr(nil, addr)
	assert.Equal(t, raw, reencoded)
}
