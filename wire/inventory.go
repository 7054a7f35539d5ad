package wire

import (
	"bytes"
	"fmt"
)

// Inventory item types, per spec §4.3.
const (
	InvTypeError uint32 = 0
	InvTypeTx    uint32 = 1
	InvTypeBlock uint32 = 2
)

// MaxInventoryVectors is the cap on entries in a single inv/getdata message.
const MaxInventoryVectors = 50000

// InvVect identifies one object by type and hash (32 bytes, little-endian
// on the wire, matching the internal byte order of Hash).
type InvVect struct {
	Type uint32
	Hash []byte
}

func encodeInvVects(items []InvVect) []byte {
	buf := EncodeVarInt(nil, uint64(len(items)))
	for _, it := range items {
		buf = PutUint32LE(buf, it.Type)
		buf = append(buf, it.Hash...)
	}
	return buf
}

func decodeInvVects(payload []byte) ([]InvVect, error) {
	r := bytes.NewReader(payload)
	count, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > MaxInventoryVectors {
		return nil, fmt.Errorf("%w: %d entries", ErrTooManyInventoryVectors, count)
	}

	items := make([]InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		typ, err := ReadUint32LE(r)
		if err != nil {
			return nil, err
		}
		if typ != InvTypeError && typ != InvTypeTx && typ != InvTypeBlock {
			return nil, fmt.Errorf("%w: %d", ErrUnknownInventoryType, typ)
		}
		hash := make([]byte, HashSize)
		if err := readFull(r, hash); err != nil {
			return nil, err
		}
		items = append(items, InvVect{Type: typ, Hash: hash})
	}
	return items, nil
}

// HashSize is the width of a hash as carried in inventory vectors and
// locator/stop-hash fields.
const HashSize = 32

// InvMessage is the "inv" command: objects the sending peer has available.
type InvMessage struct {
	Items []InvVect
}

// Encode serializes an InvMessage.
func (m InvMessage) Encode() []byte { return encodeInvVects(m.Items) }

// DecodeInvMessage parses an "inv" payload.
func DecodeInvMessage(payload []byte) (InvMessage, error) {
	items, err := decodeInvVects(payload)
	if err != nil {
		return InvMessage{}, err
	}
	return InvMessage{Items: items}, nil
}

// GetDataMessage is the "getdata" command: a request for the named objects.
type GetDataMessage struct {
	Items []InvVect
}

// Encode serializes a GetDataMessage.
func (m GetDataMessage) Encode() []byte { return encodeInvVects(m.Items) }

// DecodeGetDataMessage parses a "getdata" payload.
func DecodeGetDataMessage(payload []byte) (GetDataMessage, error) {
	items, err := decodeInvVects(payload)
	if err != nil {
		return GetDataMessage{}, err
	}
	return GetDataMessage{Items: items}, nil
}
