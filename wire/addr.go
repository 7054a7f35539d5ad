package wire

import (
	"bytes"
	"io"
)

// NetAddr is a network address record: services bitfield, a 16-byte
// IPv6-mapped address, and a port in big-endian (the one field the
// protocol does not write little-endian).
type NetAddr struct {
	Timestamp uint32 // only present/meaningful in addr messages, version > 31402
	Services  uint64
	IP        [16]byte
	Port      uint16
}

// IPv4 builds the 16-byte IPv4-mapped-IPv6 form ::ffff:a.b.c.d for a, b, c, d.
func IPv4(a, b, c, d byte) [16]byte {
	var ip [16]byte
	ip[10] = 0xff
	ip[11] = 0xff
	ip[12], ip[13], ip[14], ip[15] = a, b, c, d
	return ip
}

// encodeNetAddr appends services, IP, and port — the 26-byte body shared
// by the version message's embedded addresses and the addr message's
// per-entry record (which additionally prefixes a timestamp).
func encodeNetAddr(buf []byte, a NetAddr) []byte {
	buf = PutUint64LE(buf, a.Services)
	buf = append(buf, a.IP[:]...)
	buf = PutUint16BE(buf, a.Port)
	return buf
}

func decodeNetAddr(r io.Reader) (NetAddr, error) {
	var a NetAddr
	services, err := ReadUint64LE(r)
	if err != nil {
		return a, err
	}
	a.Services = services

	if err := readFull(r, a.IP[:]); err != nil {
		return a, err
	}

	port, err := ReadUint16BE(r)
	if err != nil {
		return a, err
	}
	a.Port = port
	return a, nil
}

// EncodeVersionAddr encodes the 26-byte address record embedded in a
// version message: no timestamp prefix.
func EncodeVersionAddr(buf []byte, a NetAddr) []byte {
	return encodeNetAddr(buf, a)
}

// DecodeVersionAddr decodes a 26-byte version-embedded address record.
func DecodeVersionAddr(r io.Reader) (NetAddr, error) {
	return decodeNetAddr(r)
}

// AddrMessage is the "addr" command: a VarInt count followed by that many
// timestamped address records.
type AddrMessage struct {
	Addrs []NetAddr
}

// Encode serializes an AddrMessage.
func (m AddrMessage) Encode() []byte {
	buf := EncodeVarInt(nil, uint64(len(m.Addrs)))
	for _, a := range m.Addrs {
		buf = PutUint32LE(buf, a.Timestamp)
		buf = encodeNetAddr(buf, a)
	}
	return buf
}

// DecodeAddrMessage parses an "addr" payload.
func DecodeAddrMessage(payload []byte) (AddrMessage, error) {
	r := bytes.NewReader(payload)
	count, err := DecodeVarInt(r)
	if err != nil {
		return AddrMessage{}, err
	}

	addrs := make([]NetAddr, 0, count)
	for i := uint64(0); i < count; i++ {
		ts, err := ReadUint32LE(r)
		if err != nil {
			return AddrMessage{}, err
		}
		a, err := decodeNetAddr(r)
		if err != nil {
			return AddrMessage{}, err
		}
		a.Timestamp = ts
		addrs = append(addrs, a)
	}
	return AddrMessage{Addrs: addrs}, nil
}
