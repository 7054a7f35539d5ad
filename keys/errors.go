package keys

import "errors"

var (
	// ErrInvalidAddress indicates a Base58Check payload failed to decode or
	// failed its checksum check; the version byte is not checked.
	ErrInvalidAddress = errors.New("keys: invalid address")

	// ErrNilParam indicates a required argument was nil.
	ErrNilParam = errors.New("keys: required argument is nil")

	// ErrInvalidPubKeyHash indicates a public-key hash is not 20 bytes.
	ErrInvalidPubKeyHash = errors.New("keys: public key hash must be 20 bytes")
)
