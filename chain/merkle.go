package chain

import (
	"crypto/sha256"
)

// DoubleHash computes SHA256(SHA256(data)), matching Bitcoin's hash function.
func DoubleHash(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// BuildMerkleTree builds a full Merkle tree from a list of transaction hashes.
// Returns only the final level: a single-element slice holding the root.
// Each level is padded by duplicating the last element if odd.
func BuildMerkleTree(txHashes [][]byte) [][]byte {
	if len(txHashes) == 0 {
		return nil
	}

	// Copy leaves
	level := make([][]byte, len(txHashes))
	for i, h := range txHashes {
		level[i] = make([]byte, 32)
		copy(level[i], h)
	}

	// Build tree levels until we reach the root
	for len(level) > 1 {
		// If odd number, duplicate last element
		if len(level)%2 != 0 {
			dup := make([]byte, 32)
			copy(dup, level[len(level)-1])
			level = append(level, dup)
		}

		nextLevel := make([][]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 64)
			copy(combined[:32], level[i])
			copy(combined[32:], level[i+1])
			nextLevel[i/2] = DoubleHash(combined)
		}
		level = nextLevel
	}

	return level
}

// ComputeMerkleRootFromTxList computes the Merkle root from a list of transaction IDs.
// This is used when you have all transactions in a block and want to verify
// the block header's Merkle root.
func ComputeMerkleRootFromTxList(txIDs [][]byte) []byte {
	tree := BuildMerkleTree(txIDs)
	if tree == nil {
		return nil
	}
	// BuildMerkleTree returns a single-element slice at the root level
	return tree[0]
}
