package chain

import "errors"

var (
	// ErrMerkleProofInvalid indicates the computed Merkle root does not match the expected root.
	ErrMerkleProofInvalid = errors.New("chain: merkle proof invalid")

	// ErrChainBroken indicates headers do not form a valid chain.
	ErrChainBroken = errors.New("chain: header chain broken")

	// ErrInvalidHeader indicates the header fails deserialization or hash check.
	ErrInvalidHeader = errors.New("chain: invalid header")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("chain: required parameter is nil")

	// ErrInsufficientPoW indicates the header hash does not meet the target difficulty.
	ErrInsufficientPoW = errors.New("chain: insufficient proof of work")

	// ErrUnknownHeader indicates a reorg, extension, or store lookup references
	// a header not in the store.
	ErrUnknownHeader = errors.New("chain: unknown header")

	// ErrBadDifficulty indicates a block's bits field does not match the
	// required difficulty: the retarget computation at a retarget boundary,
	// or the previous block's bits at any other height.
	ErrBadDifficulty = errors.New("chain: bits does not match required retarget difficulty")

	// ErrInvalidBlock indicates a block fails validation: insufficient proof
	// of work, a target above the network's limit, or a malformed encoding.
	// A Merkle root mismatch is reported as ErrMerkleProofInvalid instead.
	ErrInvalidBlock = errors.New("chain: invalid block")

	// ErrStaleTip indicates an operation requires a chain tip that has not been set.
	ErrStaleTip = errors.New("chain: chain has no tip")
)
