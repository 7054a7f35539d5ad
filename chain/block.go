package chain

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/bitfsorg/spvpeer-go/wire"
)

// Block is a header optionally followed by its transaction list, per
// spec §3/§4.3.
type Block struct {
	Header *BlockHeader
	Txs    []*Transaction
}

// Serialize encodes the block in wire format: 80-byte header, VarInt
// transaction count, transactions.
func (b *Block) Serialize() []byte {
	buf := SerializeHeader(b.Header)
	buf = wire.EncodeVarInt(buf, uint64(len(b.Txs)))
	for _, tx := range b.Txs {
		buf = append(buf, tx.Serialize()...)
	}
	return buf
}

// DeserializeBlock parses a "block"-format payload.
func DeserializeBlock(data []byte) (*Block, error) {
	if len(data) < BlockHeaderSize {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidBlock)
	}

	header, err := DeserializeHeader(data[:BlockHeaderSize])
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data[BlockHeaderSize:])
	count, err := wire.DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("%w: tx count: %v", ErrInvalidBlock, err)
	}

	txs := make([]*Transaction, 0, count)
	for i := uint64(0); i < count; i++ {
		tx, err := decodeTransaction(r)
		if err != nil {
			return nil, fmt.Errorf("%w: tx %d: %v", ErrInvalidBlock, i, err)
		}
		txs = append(txs, tx)
	}

	return &Block{Header: header, Txs: txs}, nil
}

// Verify checks a block against the four conditions in spec §4.5:
// the header parses, its hash satisfies its own difficulty target, that
// target does not exceed the network's proof-of-work limit, and (if
// transactions are attached) the Merkle root matches.
func (b *Block) Verify(params NetworkParams) error {
	if b == nil || b.Header == nil {
		return fmt.Errorf("%w: block", ErrNilParam)
	}

	if err := VerifyPoW(b.Header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}

	target := CompactToBig(b.Header.Bits)
	limit := CompactToBig(params.ProofOfWorkLimit)
	if target.Cmp(limit) > 0 {
		return fmt.Errorf("%w: difficulty target is bad", ErrInvalidBlock)
	}

	if len(b.Txs) > 0 {
		root := ComputeMerkleRootFromTxList(TxHashesForMerkle(b.Txs))
		if !bytes.Equal(root, b.Header.MerkleRoot) {
			return fmt.Errorf("%w: merkle root mismatch", ErrMerkleProofInvalid)
		}
	}

	return nil
}

// subsidySatoshis is the fixed coinbase reward used by CreateNextBlock.
// The subsidy halving schedule is explicitly out of scope for this layer
// (spec §3: "this layer does not enforce the schedule").
const subsidySatoshis = 50 * 1e8

// CreateNextBlock builds a successor to prev paying toPkScript the
// standard subsidy via a single coinbase output, with the caller-supplied
// bits and timestamp, and solving the header by incrementing the nonce
// until VerifyPoW succeeds. Taking the timestamp as an argument lets tests
// use a fixed clock instead of depending on wall time (spec §9).
func CreateNextBlock(prev *StoredBlock, toPkScript []byte, bits uint32, timestamp uint32) *Block {
	coinbase := &Transaction{
		Version: 1,
		Inputs: []TxIn{{
			PreviousOutput: OutPoint{Hash: make([]byte, HashSize), Index: 0xFFFFFFFF},
			ScriptSig:      []byte{0x00},
			Sequence:       DefaultSequence,
		}},
		Outputs:  []TxOut{{Value: subsidySatoshis, PkScript: toPkScript}},
		LockTime: 0,
	}

	txs := []*Transaction{coinbase}
	merkleRoot := ComputeMerkleRootFromTxList(TxHashesForMerkle(txs))

	header := &BlockHeader{
		Version:    1,
		PrevBlock:  prev.Header.Hash,
		MerkleRoot: merkleRoot,
		Timestamp:  timestamp,
		Bits:       bits,
		Nonce:      0,
		Height:     prev.Height + 1,
	}

	solveHeader(header)

	return &Block{Header: header, Txs: txs}
}

// solveHeader increments the nonce until the header's hash satisfies its
// own difficulty target. Intended for low-difficulty test/regtest targets;
// it is not a production miner.
func solveHeader(h *BlockHeader) {
	for {
		h.Hash = ComputeHeaderHash(h)
		if VerifyPoW(h) == nil {
			return
		}
		h.Nonce++
	}
}

// StoredBlock is a block header plus the chain-position metadata the
// engine needs to evaluate forks without re-walking the whole store:
// cumulative work from genesis and height, per spec §3.
type StoredBlock struct {
	Header     *BlockHeader
	ChainWork  *big.Int
	Height     uint32
}

// Build derives the StoredBlock that results from connecting block on top
// of the receiver: height+1, and chain work accumulated by this block's
// own proof-of-work contribution.
func (prev *StoredBlock) Build(header *BlockHeader) *StoredBlock {
	work := new(big.Int).Add(prev.ChainWork, WorkForTarget(header.Bits))
	return &StoredBlock{
		Header:    header,
		ChainWork: work,
		Height:    prev.Height + 1,
	}
}
