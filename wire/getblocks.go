package wire

import "bytes"

// GetBlocksMessage is the "getblocks" command: a block locator used to
// request headers/blocks the peer has beyond our tip.
type GetBlocksMessage struct {
	Version        uint32
	LocatorHashes  [][]byte
	HashStop       []byte
}

// Encode serializes a GetBlocksMessage.
func (m GetBlocksMessage) Encode() []byte {
	buf := PutUint32LE(nil, m.Version)
	buf = EncodeVarInt(buf, uint64(len(m.LocatorHashes)))
	for _, h := range m.LocatorHashes {
		buf = append(buf, h...)
	}
	buf = append(buf, m.HashStop...)
	return buf
}

// DecodeGetBlocksMessage parses a "getblocks" payload.
func DecodeGetBlocksMessage(payload []byte) (GetBlocksMessage, error) {
	r := bytes.NewReader(payload)
	var m GetBlocksMessage

	version, err := ReadUint32LE(r)
	if err != nil {
		return m, err
	}
	m.Version = version

	count, err := DecodeVarInt(r)
	if err != nil {
		return m, err
	}
	m.LocatorHashes = make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		h := make([]byte, HashSize)
		if err := readFull(r, h); err != nil {
			return m, err
		}
		m.LocatorHashes = append(m.LocatorHashes, h)
	}

	stop := make([]byte, HashSize)
	if err := readFull(r, stop); err != nil {
		return m, err
	}
	m.HashStop = stop

	return m, nil
}
