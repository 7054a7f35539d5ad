package wire

import "io"

// VarInt encoding thresholds, per spec §4.1.
const (
	varIntThreshold16 = 0xFD
	varIntThreshold32 = 0xFE
	varIntThreshold64 = 0xFF
)

// EncodeVarInt appends a variable-length integer to buf using the
// canonical Satoshi encoding: values below 0xFD are a single byte;
// otherwise a marker byte (0xFD/0xFE/0xFF) followed by a fixed-width
// little-endian integer of the smallest size that fits.
func EncodeVarInt(buf []byte, v uint64) []byte {
	switch {
	case v < varIntThreshold16:
		return append(buf, byte(v))
	case v <= 0xFFFF:
		buf = append(buf, varIntThreshold16)
		return PutUint16LE(buf, uint16(v))
	case v <= 0xFFFFFFFF:
		buf = append(buf, varIntThreshold32)
		return PutUint32LE(buf, uint32(v))
	default:
		buf = append(buf, varIntThreshold64)
		return PutUint64LE(buf, v)
	}
}

// DecodeVarInt reads a VarInt from r.
func DecodeVarInt(r io.Reader) (uint64, error) {
	var marker [1]byte
	if err := readFull(r, marker[:]); err != nil {
		return 0, err
	}

	switch marker[0] {
	case varIntThreshold16:
		v, err := ReadUint16LE(r)
		return uint64(v), err
	case varIntThreshold32:
		v, err := ReadUint32LE(r)
		return uint64(v), err
	case varIntThreshold64:
		return ReadUint64LE(r)
	default:
		return uint64(marker[0]), nil
	}
}

// EncodeVarStr appends a length-prefixed (VarInt count of bytes) string.
func EncodeVarStr(buf []byte, s string) []byte {
	buf = EncodeVarInt(buf, uint64(len(s)))
	return append(buf, []byte(s)...)
}

// DecodeVarStr reads a VarInt-length-prefixed string.
func DecodeVarStr(r io.Reader) (string, error) {
	n, err := DecodeVarInt(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// VarIntSize returns the number of bytes EncodeVarInt would produce for v.
func VarIntSize(v uint64) int {
	switch {
	case v < varIntThreshold16:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}
