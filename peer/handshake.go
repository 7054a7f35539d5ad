package peer

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"github.com/bitfsorg/spvpeer-go/wire"
)

// Dial connects to addr and performs the version/verack handshake
// described in spec §4.3/§6, returning a Peer ready for Run.
func Dial(addr string, cfg Config) (*Peer, error) {
	conn, err := net.DialTimeout("tcp", addr, cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("peer: dial %s: %w", addr, err)
	}

	p, err := handshake(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

// AcceptHandshake performs the same version/verack exchange as Dial over an
// already-accepted inbound connection.
func AcceptHandshake(conn net.Conn, cfg Config) (*Peer, error) {
	p, err := handshake(conn, conn.RemoteAddr().String(), cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func handshake(conn net.Conn, addr string, cfg Config) (*Peer, error) {
	if cfg.DialTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(cfg.DialTimeout))
	}
	defer conn.SetDeadline(time.Time{})

	p := &Peer{
		conn:       conn,
		reader:     wire.NewReader(conn, cfg.Params.Magic, false),
		writer:     wire.NewWriter(conn, cfg.Params.Magic, false),
		cfg:        cfg,
		remoteAddr: addr,
	}

	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	localVersion := wire.VersionMessage{
		ProtocolVersion: ProtocolVersion,
		Services:        cfg.Services,
		Timestamp:       time.Now().Unix(),
		AddrRecv:        wire.NetAddr{Services: cfg.Services},
		AddrFrom:        wire.NetAddr{Services: cfg.Services},
		Nonce:           nonce,
		SubVersion:      cfg.UserAgent,
		StartHeight:     cfg.startHeight(),
	}
	// Both sides send before they read, so each send runs concurrently
	// with the matching read; an unbuffered conn would otherwise deadlock.
	sendErr := make(chan error, 1)
	go func() { sendErr <- p.Send("version", localVersion.Encode()) }()

	remoteVersion, err := readExpected(p.reader, "version")
	if err != nil {
		return nil, err
	}
	if err := <-sendErr; err != nil {
		return nil, fmt.Errorf("peer: send version: %w", err)
	}
	rv, err := wire.DecodeVersionMessage(remoteVersion.Payload)
	if err != nil {
		return nil, fmt.Errorf("peer: decode version: %w", err)
	}

	negotiated := wire.NegotiateVersion(ProtocolVersion, rv.ProtocolVersion)
	useChecksum := negotiated >= wire.ChecksumMinVersion
	p.reader.SetChecksum(useChecksum)
	p.writer.SetChecksum(useChecksum)

	p.mu.Lock()
	p.negotiatedVer = negotiated
	p.remoteUserAgent = rv.SubVersion
	p.remoteHeight = rv.StartHeight
	p.mu.Unlock()

	go func() { sendErr <- p.Send("verack", wire.VerackMessage{}.Encode()) }()

	if _, err := readExpected(p.reader, "verack"); err != nil {
		return nil, err
	}
	if err := <-sendErr; err != nil {
		return nil, fmt.Errorf("peer: send verack: %w", err)
	}

	return p, nil
}

func readExpected(r *wire.Reader, command string) (wire.Message, error) {
	msg, err := r.ReadMessage()
	if err != nil {
		return wire.Message{}, fmt.Errorf("peer: read %s: %w", command, err)
	}
	if msg.Command != command {
		return wire.Message{}, fmt.Errorf("%w: wanted %q, got %q", ErrUnexpectedMessage, command, msg.Command)
	}
	return msg, nil
}

func randomNonce() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
