package peer

import "errors"

var (
	// ErrUnexpectedMessage indicates the peer sent something other than
	// the message the handshake protocol expected next.
	ErrUnexpectedMessage = errors.New("peer: unexpected message during handshake")

	// ErrHandshakeTimeout indicates the version/verack exchange did not
	// complete within the configured dial timeout.
	ErrHandshakeTimeout = errors.New("peer: handshake timed out")

	// ErrDisconnected indicates an operation was attempted on a
	// connection that has already been closed.
	ErrDisconnected = errors.New("peer: connection closed")

	// ErrNoSeeds indicates DNS seed discovery returned no usable
	// addresses.
	ErrNoSeeds = errors.New("peer: no addresses from seed discovery")
)
