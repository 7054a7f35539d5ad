package peer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/wire"
)

func TestPeer_Broadcast_SendsInv(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	p := &Peer{
		conn:   client,
		reader: wire.NewReader(client, chain.UnitTestParams.Magic, false),
		writer: wire.NewWriter(client, chain.UnitTestParams.Magic, false),
	}

	tx := &chain.Transaction{Version: 1, LockTime: 0}

	done := make(chan wire.Message, 1)
	go func() {
		serverReader := wire.NewReader(server, chain.UnitTestParams.Magic, false)
		msg, _ := serverReader.ReadMessage()
		done <- msg
	}()

	require.NoError(t, p.Broadcast(tx))

	msg := <-done
	assert.Equal(t, "inv", msg.Command)

	inv, err := wire.DecodeInvMessage(msg.Payload)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, wire.InvTypeTx, inv.Items[0].Type)
	assert.Equal(t, tx.TxID(), inv.Items[0].Hash)
}

func TestPeer_Send_AfterClose(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	p := &Peer{
		conn:   client,
		reader: wire.NewReader(client, chain.UnitTestParams.Magic, false),
		writer: wire.NewWriter(client, chain.UnitTestParams.Magic, false),
	}
	require.NoError(t, p.Close())

	err := p.Send("verack", nil)
	assert.ErrorIs(t, err, ErrDisconnected)
}
