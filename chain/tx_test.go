package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txTestHash(seed byte) []byte {
	h := make([]byte, HashSize)
	for i := range h {
		h[i] = seed
	}
	return h
}

func TestTransaction_SerializeRoundTrip(t *testing.T) {
	tx := &Transaction{
		Version: 1,
		Inputs: []TxIn{{
			PreviousOutput: OutPoint{Hash: txTestHash(0x01), Index: 0},
			ScriptSig:      []byte{0x01, 0x02, 0x03},
			Sequence:       DefaultSequence,
		}},
		Outputs: []TxOut{
			{Value: 100000, PkScript: []byte{0x76, 0xa9}},
			{Value: 5000, PkScript: []byte{0x76, 0xa9, 0x14}},
		},
		LockTime: 0,
	}

	decoded, err := DeserializeTransaction(tx.Serialize())
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
}

func TestTransaction_TxIDDeterministic(t *testing.T) {
	tx := &Transaction{Version: 1, LockTime: 0}
	assert.Equal(t, tx.TxID(), tx.TxID())
	assert.Len(t, tx.TxID(), HashSize)
}

func TestTransaction_IsCoinbase(t *testing.T) {
	coinbase := &Transaction{
		Inputs: []TxIn{{PreviousOutput: OutPoint{Hash: make([]byte, HashSize), Index: 0xFFFFFFFF}}},
	}
	assert.True(t, coinbase.IsCoinbase())

	ordinary := &Transaction{
		Inputs: []TxIn{{PreviousOutput: OutPoint{Hash: txTestHash(0x01), Index: 0}}},
	}
	assert.False(t, ordinary.IsCoinbase())
}

func TestTransaction_IsCoinbase_MultipleInputsNeverCoinbase(t *testing.T) {
	tx := &Transaction{Inputs: []TxIn{
		{PreviousOutput: OutPoint{Hash: make([]byte, HashSize), Index: 0xFFFFFFFF}},
		{PreviousOutput: OutPoint{Hash: txTestHash(0x02), Index: 1}},
	}}
	assert.False(t, tx.IsCoinbase())
}

func TestOutPoint_IsNull(t *testing.T) {
	assert.True(t, OutPoint{Hash: make([]byte, HashSize), Index: 0xFFFFFFFF}.IsNull())
	assert.False(t, OutPoint{Hash: txTestHash(0x01), Index: 0xFFFFFFFF}.IsNull())
	assert.False(t, OutPoint{Hash: make([]byte, HashSize), Index: 0}.IsNull())
}

func TestTxHashesForMerkle(t *testing.T) {
	txs := []*Transaction{{Version: 1}, {Version: 2}}
	hashes := TxHashesForMerkle(txs)
	require.Len(t, hashes, 2)
	assert.Equal(t, txs[0].TxID(), hashes[0])
	assert.NotEqual(t, hashes[0], hashes[1])
}
