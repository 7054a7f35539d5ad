package wire

import "bytes"

// VersionMessage is the "version" command exchanged at the start of a
// peer connection (spec §4.3). The embedded addresses use the 26-byte
// form without a timestamp prefix.
type VersionMessage struct {
	ProtocolVersion int32
	Services        uint64
	Timestamp       int64
	AddrRecv        NetAddr
	AddrFrom        NetAddr
	Nonce           uint64
	SubVersion      string
	StartHeight     int32
}

// Encode serializes a VersionMessage payload.
func (m VersionMessage) Encode() []byte {
	buf := make([]byte, 0, 128)
	buf = PutInt32LE(buf, m.ProtocolVersion)
	buf = PutUint64LE(buf, m.Services)
	buf = PutInt64LE(buf, m.Timestamp)
	buf = EncodeVersionAddr(buf, m.AddrRecv)
	buf = EncodeVersionAddr(buf, m.AddrFrom)
	buf = PutUint64LE(buf, m.Nonce)
	buf = EncodeVarStr(buf, m.SubVersion)
	buf = PutInt32LE(buf, m.StartHeight)
	return buf
}

// DecodeVersionMessage parses a "version" payload.
func DecodeVersionMessage(payload []byte) (VersionMessage, error) {
	r := bytes.NewReader(payload)
	var m VersionMessage
	var err error

	if m.ProtocolVersion, err = ReadInt32LE(r); err != nil {
		return m, err
	}
	if m.Services, err = ReadUint64LE(r); err != nil {
		return m, err
	}
	if m.Timestamp, err = ReadInt64LE(r); err != nil {
		return m, err
	}
	if m.AddrRecv, err = DecodeVersionAddr(r); err != nil {
		return m, err
	}
	if m.AddrFrom, err = DecodeVersionAddr(r); err != nil {
		return m, err
	}
	if m.Nonce, err = ReadUint64LE(r); err != nil {
		return m, err
	}
	if m.SubVersion, err = DecodeVarStr(r); err != nil {
		return m, err
	}
	if m.StartHeight, err = ReadInt32LE(r); err != nil {
		return m, err
	}
	return m, nil
}

// NegotiateVersion returns the lower of the two peers' advertised
// protocol versions, the version used for the remainder of the session.
func NegotiateVersion(local, remote int32) int32 {
	if local < remote {
		return local
	}
	return remote
}

// VerackMessage is the empty-payload "verack" command.
type VerackMessage struct{}

// Encode returns the empty verack payload.
func (VerackMessage) Encode() []byte { return nil }
