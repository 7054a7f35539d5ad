package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_SerializeRoundTrip(t *testing.T) {
	tx := &Transaction{Version: 1, Outputs: []TxOut{{Value: 5000000000, PkScript: []byte{0x51}}},
		Inputs: []TxIn{{PreviousOutput: OutPoint{Hash: make([]byte, HashSize), Index: 0xFFFFFFFF}, ScriptSig: []byte{0x00}, Sequence: DefaultSequence}}}

	header := &BlockHeader{
		Version:    1,
		PrevBlock:  txTestHash(0x01),
		MerkleRoot: ComputeMerkleRootFromTxList(TxHashesForMerkle([]*Transaction{tx})),
		Timestamp:  1700000000,
		Bits:       0x1d00ffff,
		Nonce:      7,
	}
	header.Hash = ComputeHeaderHash(header)

	block := &Block{Header: header, Txs: []*Transaction{tx}}

	decoded, err := DeserializeBlock(block.Serialize())
	require.NoError(t, err)
	assert.Equal(t, block.Header.Hash, ComputeHeaderHash(decoded.Header))
	require.Len(t, decoded.Txs, 1)
	assert.Equal(t, tx.TxID(), decoded.Txs[0].TxID())
}

func TestBlock_Verify_BadMerkleRoot(t *testing.T) {
	tx := &Transaction{Version: 1}
	header := &BlockHeader{Version: 1, PrevBlock: txTestHash(0x00), MerkleRoot: txTestHash(0xFF), Bits: UnitTestParams.ProofOfWorkLimit}
	header.Hash = ComputeHeaderHash(header)
	solveHeader(header)

	block := &Block{Header: header, Txs: []*Transaction{tx}}
	err := block.Verify(UnitTestParams)
	assert.ErrorIs(t, err, ErrMerkleProofInvalid)
}

func TestBlock_Verify_DifficultyTargetTooEasy(t *testing.T) {
	header := &BlockHeader{Version: 1, PrevBlock: txTestHash(0x00), Bits: 0x207fffff}
	solveHeader(header)
	// Network limit is mainnet's, far tighter than 0x207fffff.
	block := &Block{Header: header}
	err := block.Verify(MainnetParams)
	assert.ErrorContains(t, err, "bad")
}

func TestBlock_Verify_NoTxsSkipsMerkleCheck(t *testing.T) {
	header := &BlockHeader{Version: 1, PrevBlock: txTestHash(0x00), Bits: UnitTestParams.ProofOfWorkLimit}
	solveHeader(header)
	block := &Block{Header: header}
	assert.NoError(t, block.Verify(UnitTestParams))
}

func TestCreateNextBlock_SolvesPoW(t *testing.T) {
	genesisHeader := &BlockHeader{Version: 1, Bits: UnitTestParams.ProofOfWorkLimit}
	solveHeader(genesisHeader)
	prev := &StoredBlock{Header: genesisHeader, ChainWork: WorkForTarget(genesisHeader.Bits), Height: 0}

	next := CreateNextBlock(prev, []byte{0x76, 0xa9}, UnitTestParams.ProofOfWorkLimit, genesisHeader.Timestamp+600)

	require.NoError(t, VerifyPoW(next.Header))
	assert.Equal(t, prev.Header.Hash, next.Header.PrevBlock)
	assert.Equal(t, uint32(1), next.Header.Height)
	require.Len(t, next.Txs, 1)
	assert.True(t, next.Txs[0].IsCoinbase())
}

func TestStoredBlock_Build(t *testing.T) {
	genesisHeader := &BlockHeader{Version: 1, Bits: 0x1d00ffff}
	genesisHeader.Hash = ComputeHeaderHash(genesisHeader)
	prev := &StoredBlock{Header: genesisHeader, ChainWork: WorkForTarget(genesisHeader.Bits), Height: 0}

	next := &BlockHeader{Version: 1, PrevBlock: genesisHeader.Hash, Bits: 0x1d00ffff}
	built := prev.Build(next)

	assert.Equal(t, uint32(1), built.Height)
	expectedWork := WorkForTarget(genesisHeader.Bits)
	expectedWork.Add(expectedWork, WorkForTarget(next.Bits))
	assert.Equal(t, expectedWork, built.ChainWork)
}
