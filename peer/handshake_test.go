package peer

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/spvpeer-go/chain"
)

func testConfig() Config {
	cfg := DefaultConfig(chain.UnitTestParams)
	cfg.DialTimeout = 2 * time.Second
	return cfg
}

func TestHandshake_RoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	type result struct {
		peer *Peer
		err  error
	}
	clientCh := make(chan result, 1)
	serverCh := make(chan result, 1)

	go func() {
		p, err := handshake(client, "client-side", testConfig())
		clientCh <- result{p, err}
	}()
	go func() {
		p, err := AcceptHandshake(server, testConfig())
		serverCh <- result{p, err}
	}()

	cr := <-clientCh
	sr := <-serverCh

	require.NoError(t, cr.err)
	require.NoError(t, sr.err)
	assert.Equal(t, ProtocolVersion, cr.peer.NegotiatedVersion())
	assert.Equal(t, ProtocolVersion, sr.peer.NegotiatedVersion())
}

func TestHandshake_FailsWhenPeerDisconnects(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := handshake(client, "client-side", testConfig())
		errCh <- err
	}()

	// The remote side closes immediately without completing the exchange.
	server.Close()

	err := <-errCh
	assert.Error(t, err)
}
