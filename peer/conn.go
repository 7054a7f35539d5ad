package peer

import (
	"net"
	"sync"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/wire"
)

// Handler processes one decoded message received from a peer. It runs on
// the connection's single reader goroutine (spec §5) and must not block
// indefinitely.
type Handler func(p *Peer, msg wire.Message)

// Peer is one TCP connection to a network peer: a framed reader/writer
// pair per spec §4.2, a negotiated protocol version, and a dispatch point
// for incoming messages. A Peer has exactly one reader goroutine; writes
// from any goroutine are serialized by wire.Writer's internal mutex.
type Peer struct {
	conn   net.Conn
	reader *wire.Reader
	writer *wire.Writer
	cfg    Config

	mu              sync.Mutex
	negotiatedVer   int32
	closed          bool
	remoteAddr      string
	remoteUserAgent string
	remoteHeight    int32
}

// Addr returns the remote address this peer is connected to.
func (p *Peer) Addr() string { return p.remoteAddr }

// NegotiatedVersion returns min(local, remote) as settled during the
// handshake.
func (p *Peer) NegotiatedVersion() int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.negotiatedVer
}

// Send frames and writes one message. Safe for concurrent use: wire.Writer
// serializes composed header+payload writes under its own mutex.
func (p *Peer) Send(command string, payload []byte) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrDisconnected
	}
	return p.writer.WriteMessage(command, payload)
}

// SendInv sends an "inv" message.
func (p *Peer) SendInv(items []wire.InvVect) error {
	return p.Send("inv", wire.InvMessage{Items: items}.Encode())
}

// SendGetData sends a "getdata" message.
func (p *Peer) SendGetData(items []wire.InvVect) error {
	return p.Send("getdata", wire.GetDataMessage{Items: items}.Encode())
}

// SendGetBlocks sends a "getblocks" message.
func (p *Peer) SendGetBlocks(locator wire.GetBlocksMessage) error {
	return p.Send("getblocks", locator.Encode())
}

// Broadcast implements wallet.Broadcaster: it announces tx via inv, which
// is how this client, never having advertised the relay service bit to
// begin with, still pushes its own outgoing transactions onto the network.
func (p *Peer) Broadcast(tx *chain.Transaction) error {
	return p.SendInv([]wire.InvVect{{Type: wire.InvTypeTx, Hash: tx.TxID()}})
}

// Close shuts the underlying socket. The reader goroutine's next read
// observes end-of-stream and returns.
func (p *Peer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	return p.conn.Close()
}

// Run reads frames until the connection closes or a framing error occurs,
// dispatching each to handler. It blocks the calling goroutine — callers
// run it as the connection's single reader goroutine, per spec §5.
func (p *Peer) Run(handler Handler) error {
	for {
		msg, err := p.reader.ReadMessage()
		if err != nil {
			_ = p.Close()
			return err
		}
		handler(p, msg)
	}
}
