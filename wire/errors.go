package wire

import "errors"

var (
	// ErrOversizeMessage indicates a declared payload length exceeds MaxPayloadSize.
	ErrOversizeMessage = errors.New("wire: message payload exceeds maximum size")

	// ErrChecksumMismatch indicates the payload checksum did not match the header.
	ErrChecksumMismatch = errors.New("wire: payload checksum mismatch")

	// ErrShortRead indicates the connection closed before the requested bytes arrived.
	ErrShortRead = errors.New("wire: short read, connection closed")

	// ErrInvalidVarInt indicates a VarInt prefix byte had no valid decoding.
	ErrInvalidVarInt = errors.New("wire: invalid varint encoding")

	// ErrTruncatedMessage indicates a fixed-size field ran past the end of the payload.
	ErrTruncatedMessage = errors.New("wire: truncated message")

	// ErrUnknownInventoryType indicates an inv/getdata entry used a type outside {0,1,2}.
	ErrUnknownInventoryType = errors.New("wire: unknown inventory type")

	// ErrTooManyInventoryVectors indicates an inv/getdata message exceeded the 50000 cap.
	ErrTooManyInventoryVectors = errors.New("wire: inventory count exceeds maximum")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("wire: required parameter is nil")
)
