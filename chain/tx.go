package chain

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bitfsorg/spvpeer-go/wire"
)

// OutPoint references a previous transaction output by txid and index.
type OutPoint struct {
	Hash  []byte // 32 bytes, internal (little-endian) byte order
	Index uint32
}

// IsNull reports whether the outpoint is the null reference used by a
// coinbase input: an all-zeros hash with index 0xFFFFFFFF.
func (o OutPoint) IsNull() bool {
	if o.Index != 0xFFFFFFFF {
		return false
	}
	for _, b := range o.Hash {
		if b != 0 {
			return false
		}
	}
	return true
}

// TxIn is one transaction input.
type TxIn struct {
	PreviousOutput OutPoint
	ScriptSig      []byte
	Sequence       uint32
}

// TxOut is one transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Transaction is an ordered list of inputs and outputs plus version and
// lock-time, per spec §3/§4.3.
type Transaction struct {
	Version  int32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// DefaultSequence is the sequence number used by inputs that do not opt
// into relative-locktime or replace-by-fee semantics.
const DefaultSequence = 0xFFFFFFFF

// IsCoinbase reports whether tx has exactly one input whose previous
// output is the null outpoint, per spec §3.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].PreviousOutput.IsNull()
}

// Serialize encodes the transaction in wire format: version, VarInt
// input count, inputs, VarInt output count, outputs, lock-time.
func (tx *Transaction) Serialize() []byte {
	buf := wire.PutInt32LE(nil, tx.Version)
	buf = wire.EncodeVarInt(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.PreviousOutput.Hash...)
		buf = wire.PutUint32LE(buf, in.PreviousOutput.Index)
		buf = wire.EncodeVarInt(buf, uint64(len(in.ScriptSig)))
		buf = append(buf, in.ScriptSig...)
		buf = wire.PutUint32LE(buf, in.Sequence)
	}
	buf = wire.EncodeVarInt(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = wire.PutInt64LE(buf, out.Value)
		buf = wire.EncodeVarInt(buf, uint64(len(out.PkScript)))
		buf = append(buf, out.PkScript...)
	}
	buf = wire.PutUint32LE(buf, tx.LockTime)
	return buf
}

// TxID returns the double-SHA256 of the serialized transaction — its
// identity on the chain and in wallet pools.
func (tx *Transaction) TxID() []byte {
	return wire.DoubleSHA256(tx.Serialize())
}

// DeserializeTransaction parses a "tx"-format payload.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	return decodeTransaction(bytes.NewReader(data))
}

// decodeTransaction reads one transaction from r, leaving the reader
// positioned just past it — used both by DeserializeTransaction and by
// DeserializeBlock to walk a concatenated transaction list with no
// length prefix between entries.
func decodeTransaction(r *bytes.Reader) (*Transaction, error) {
	tx := &Transaction{}

	version, err := wire.ReadInt32LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrInvalidBlock, err)
	}
	tx.Version = version

	numIn, err := wire.DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("%w: input count: %v", ErrInvalidBlock, err)
	}
	tx.Inputs = make([]TxIn, 0, numIn)
	for i := uint64(0); i < numIn; i++ {
		in, err := decodeTxIn(r)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %v", ErrInvalidBlock, i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	numOut, err := wire.DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("%w: output count: %v", ErrInvalidBlock, err)
	}
	tx.Outputs = make([]TxOut, 0, numOut)
	for i := uint64(0); i < numOut; i++ {
		out, err := decodeTxOut(r)
		if err != nil {
			return nil, fmt.Errorf("%w: output %d: %v", ErrInvalidBlock, i, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	lockTime, err := wire.ReadUint32LE(r)
	if err != nil {
		return nil, fmt.Errorf("%w: locktime: %v", ErrInvalidBlock, err)
	}
	tx.LockTime = lockTime

	return tx, nil
}

func decodeTxIn(r *bytes.Reader) (TxIn, error) {
	hash := make([]byte, HashSize)
	if _, err := io.ReadFull(r, hash); err != nil {
		return TxIn{}, err
	}
	index, err := wire.ReadUint32LE(r)
	if err != nil {
		return TxIn{}, err
	}
	scriptLen, err := wire.DecodeVarInt(r)
	if err != nil {
		return TxIn{}, err
	}
	script := make([]byte, scriptLen)
	if scriptLen > 0 {
		if _, err := io.ReadFull(r, script); err != nil {
			return TxIn{}, err
		}
	}
	sequence, err := wire.ReadUint32LE(r)
	if err != nil {
		return TxIn{}, err
	}
	return TxIn{
		PreviousOutput: OutPoint{Hash: hash, Index: index},
		ScriptSig:      script,
		Sequence:       sequence,
	}, nil
}

func decodeTxOut(r *bytes.Reader) (TxOut, error) {
	value, err := wire.ReadInt64LE(r)
	if err != nil {
		return TxOut{}, err
	}
	scriptLen, err := wire.DecodeVarInt(r)
	if err != nil {
		return TxOut{}, err
	}
	script := make([]byte, scriptLen)
	if scriptLen > 0 {
		if _, err := io.ReadFull(r, script); err != nil {
			return TxOut{}, err
		}
	}
	return TxOut{Value: value, PkScript: script}, nil
}

// TxHashesForMerkle returns the txids of txs in block order, the input to
// BuildMerkleTree/ComputeMerkleRootFromTxList.
func TxHashesForMerkle(txs []*Transaction) [][]byte {
	hashes := make([][]byte, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.TxID()
	}
	return hashes
}
