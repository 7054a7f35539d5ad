// Package wire implements the magic-framed peer wire protocol: codec
// primitives, message framing with resync, and the typed messages
// exchanged during the version handshake and header/block relay.
package wire

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
)

// CommandSize is the fixed width of the NUL-padded ASCII command field.
const CommandSize = 12

// MaxPayloadSize is the largest payload this codec will accept, per spec §4.2.
const MaxPayloadSize = 32 * 1024 * 1024

// DoubleSHA256 returns SHA-256(SHA-256(b)), the hash used for checksums,
// txids, and block hashes throughout the protocol.
func DoubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// ReverseBytes returns a copy of b with byte order reversed, converting
// between the wire's little-endian hash encoding and the conventional
// big-endian display/hex form.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return ErrShortRead
		}
		return err
	}
	return nil
}

// ReadUint16LE reads a little-endian u16.
func ReadUint16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadUint16BE reads a big-endian u16 (used for the port field in addr records).
func ReadUint16BE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadUint32LE reads a little-endian u32.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadUint64LE reads a little-endian u64.
func ReadUint64LE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadInt32LE reads a little-endian signed i32.
func ReadInt32LE(r io.Reader) (int32, error) {
	v, err := ReadUint32LE(r)
	return int32(v), err
}

// ReadInt64LE reads a little-endian signed i64.
func ReadInt64LE(r io.Reader) (int64, error) {
	v, err := ReadUint64LE(r)
	return int64(v), err
}

// PutUint32LE appends a little-endian u32 to buf.
func PutUint32LE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// PutUint32BE appends a big-endian u32 to buf. Used only for the network
// magic, which spec §6 fixes as big-endian on the wire.
func PutUint32BE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// PutUint64LE appends a little-endian u64 to buf.
func PutUint64LE(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// PutUint16LE appends a little-endian u16 to buf.
func PutUint16LE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// PutUint16BE appends a big-endian u16 to buf.
func PutUint16BE(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// PutInt32LE appends a little-endian i32 to buf.
func PutInt32LE(buf []byte, v int32) []byte {
	return PutUint32LE(buf, uint32(v))
}

// PutInt64LE appends a little-endian i64 to buf.
func PutInt64LE(buf []byte, v int64) []byte {
	return PutUint64LE(buf, uint64(v))
}

// EncodeCommand renders a command string into the fixed 12-byte,
// NUL-padded wire field. Per spec §9 Open Questions, every byte of the
// field is written from the source string — not just its first rune.
func EncodeCommand(command string) ([CommandSize]byte, error) {
	var out [CommandSize]byte
	if len(command) > CommandSize {
		return out, fmt.Errorf("wire: command %q exceeds %d bytes", command, CommandSize)
	}
	copy(out[:], command)
	return out, nil
}

// DecodeCommand trims trailing NUL bytes from a fixed command field.
func DecodeCommand(field [CommandSize]byte) string {
	n := CommandSize
	for n > 0 && field[n-1] == 0 {
		n--
	}
	return string(field[:n])
}
