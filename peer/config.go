package peer

import (
	"time"

	"github.com/bitfsorg/spvpeer-go/chain"
)

// ProtocolVersion is the protocol version this client advertises in its
// version message. Messages are checksummed once the negotiated version
// reaches wire.ChecksumMinVersion.
const ProtocolVersion int32 = 70015

// DefaultServices advertises no services of our own — this is a pure SPV
// client, not a full relaying node.
const DefaultServices uint64 = 0

// Config holds everything a Peer connection needs that is not specific
// to one dial: the network it speaks, what it advertises about itself,
// and how long it will wait for a handshake to complete.
type Config struct {
	Params      chain.NetworkParams
	UserAgent   string
	Services    uint64
	DialTimeout time.Duration

	// StartHeight reports the local chain height to advertise in the
	// version message. May be nil, in which case 0 is advertised.
	StartHeight func() int32
}

// DefaultConfig returns a Config for params with this client's standard
// user agent and a 10-second handshake timeout.
func DefaultConfig(params chain.NetworkParams) Config {
	return Config{
		Params:      params,
		UserAgent:   "/spvpeer:0.1/",
		Services:    DefaultServices,
		DialTimeout: 10 * time.Second,
	}
}

func (c Config) startHeight() int32 {
	if c.StartHeight == nil {
		return 0
	}
	return c.StartHeight()
}
