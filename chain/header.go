package chain

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

const (
	// BlockHeaderSize is the size of a serialized BSV block header in bytes.
	BlockHeaderSize = 80

	// HashSize is the size of a SHA256 hash in bytes.
	HashSize = 32
)

// BlockHeader represents a BSV block header (80 bytes serialized).
type BlockHeader struct {
	Version    int32  // 4 bytes, little-endian
	PrevBlock  []byte // 32 bytes
	MerkleRoot []byte // 32 bytes
	Timestamp  uint32 // 4 bytes, little-endian (Unix timestamp)
	Bits       uint32 // 4 bytes, little-endian (compact target)
	Nonce      uint32 // 4 bytes, little-endian
	Height     uint32 // Not in raw header; tracked separately
	Hash       []byte // Computed: double-SHA256 of 80-byte header
}

// SerializeHeader serializes a BlockHeader to 80 bytes in BSV wire format.
//
// Layout: version(4) | prevBlock(32) | merkleRoot(32) | timestamp(4) | bits(4) | nonce(4)
func SerializeHeader(h *BlockHeader) []byte {
	if h == nil {
		return nil
	}

	buf := make([]byte, BlockHeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock)
	copy(buf[36:68], h.MerkleRoot)
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)

	return buf
}

// DeserializeHeader deserializes 80 bytes into a BlockHeader.
// The Hash field is computed from the serialized data.
func DeserializeHeader(data []byte) (*BlockHeader, error) {
	if len(data) != BlockHeaderSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidHeader, BlockHeaderSize, len(data))
	}

	h := &BlockHeader{
		Version:    int32(binary.LittleEndian.Uint32(data[0:4])),
		PrevBlock:  make([]byte, HashSize),
		MerkleRoot: make([]byte, HashSize),
		Timestamp:  binary.LittleEndian.Uint32(data[68:72]),
		Bits:       binary.LittleEndian.Uint32(data[72:76]),
		Nonce:      binary.LittleEndian.Uint32(data[76:80]),
	}

	copy(h.PrevBlock, data[4:36])
	copy(h.MerkleRoot, data[36:68])

	// Compute header hash
	h.Hash = DoubleHash(data)

	return h, nil
}

// ComputeHeaderHash computes and returns the double-SHA256 hash of a block header.
func ComputeHeaderHash(h *BlockHeader) []byte {
	raw := SerializeHeader(h)
	if raw == nil {
		return nil
	}
	return DoubleHash(raw)
}

// CompactToTarget converts a Bitcoin "compact" (nBits) representation to a 32-byte
// big-endian target value. Format: 0xEEMMMMMM where EE=exponent, MMMMMM=mantissa.
func CompactToTarget(bits uint32) []byte {
	exponent := bits >> 24
	mantissa := bits & 0x007fffff
	// Negative flag (bit 23 of mantissa) — treat as zero target.
	if bits&0x00800000 != 0 {
		mantissa = 0
	}

	target := make([]byte, 32)
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		target[31] = byte(mantissa)
		target[30] = byte(mantissa >> 8)
		target[29] = byte(mantissa >> 16)
	} else {
		pos := 32 - int(exponent)
		if pos >= 0 && pos < 32 {
			target[pos] = byte(mantissa >> 16)
		}
		if pos+1 >= 0 && pos+1 < 32 {
			target[pos+1] = byte(mantissa >> 8)
		}
		if pos+2 >= 0 && pos+2 < 32 {
			target[pos+2] = byte(mantissa)
		}
	}
	return target
}

// VerifyPoW checks that a block header's hash meets its stated difficulty target.
// The header hash (double-SHA256 output, big-endian as 256-bit integer) must be
// numerically <= the target derived from Bits.
func VerifyPoW(h *BlockHeader) error {
	if h == nil {
		return fmt.Errorf("%w: header", ErrNilParam)
	}
	hash := h.Hash
	if len(hash) == 0 {
		hash = ComputeHeaderHash(h)
	}
	target := CompactToTarget(h.Bits)

	// Compare hash vs target byte-by-byte in big-endian order (MSB first).
	// SHA256 output is naturally big-endian.
	for i := 0; i < 32; i++ {
		if hash[i] < target[i] {
			return nil // hash < target → valid
		}
		if hash[i] > target[i] {
			return fmt.Errorf("%w: hash exceeds target", ErrInsufficientPoW)
		}
	}
	return nil // hash == target → valid
}

// two256 is the constant 2^256, precomputed for work calculations.
var two256 *big.Int

func init() {
	two256 = new(big.Int).Lsh(big.NewInt(1), 256)
}

// CompactToBig converts a Bitcoin compact (nBits) representation to a big.Int target value.
func CompactToBig(bits uint32) *big.Int {
	exponent := bits >> 24
	mantissa := int64(bits & 0x007fffff)
	if bits&0x00800000 != 0 {
		mantissa = 0 // negative flag — treat as zero target
	}

	target := big.NewInt(mantissa)
	if exponent <= 3 {
		target.Rsh(target, uint(8*(3-exponent)))
	} else {
		target.Lsh(target, uint(8*(exponent-3)))
	}
	return target
}

// WorkForTarget computes the expected number of hashes to find a block
// at the given compact difficulty: work = 2^256 / (target + 1).
// Returns zero work for a zero or negative target.
func WorkForTarget(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return new(big.Int)
	}

	// work = 2^256 / (target + 1)
	denominator := new(big.Int).Add(target, big.NewInt(1))
	return new(big.Int).Div(two256, denominator)
}

