package wallet

import (
	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/keys"
	"github.com/bitfsorg/spvpeer-go/wire"
)

// SighashAll is the legacy (pre-fork-id) sighash type this wallet signs
// with, per §4.8 step 3.
const SighashAll uint32 = 0x01

// Broadcaster sends a finished transaction to the network. A peer
// connection satisfies this.
type Broadcaster interface {
	Broadcast(tx *chain.Transaction) error
}

// selectedOutput is one unspent output chosen by coin selection.
type selectedOutput struct {
	key   string // txid hex of the owning transaction
	index uint32
	wtx   *WalletTx
	out   *chain.TxOut
	owner *keys.EcKey
}

// selectCoins walks the unspent pool in insertion order, as §4.8 step 1
// requires, accumulating owned-and-unspent outputs until their total value
// is at least want.
func (w *Wallet) selectCoins(want int64) ([]selectedOutput, int64, bool) {
	var picked []selectedOutput
	var total int64
	w.unspent.inOrder(func(key string, wtx *WalletTx) bool {
		for i := range wtx.Tx.Outputs {
			out := &wtx.Tx.Outputs[i]
			owner, owned := w.ownerOf(out.PkScript)
			if !owned || w.isSpentForAvailable(wtx, uint32(i)) {
				continue
			}
			picked = append(picked, selectedOutput{key: key, index: uint32(i), wtx: wtx, out: out, owner: owner})
			total += out.Value
			if total >= want {
				return false
			}
		}
		return true
	})
	return picked, total, total >= want
}

// CreateSend builds and signs a transaction paying value to toPkScript,
// spending whatever unspent outputs are needed. changePkScript, if
// non-nil, receives any excess over value; otherwise change goes to the
// first keychain address. CreateSend does not mutate wallet state: call
// ConfirmSend to move the spent outputs into pending.
func (w *Wallet) CreateSend(toPkScript []byte, value int64, changePkScript []byte) (*chain.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if value <= 0 {
		return nil, ErrInvalidValue
	}

	picked, total, ok := w.selectCoins(value)
	if !ok {
		return nil, ErrInsufficientFunds
	}

	if changePkScript == nil {
		if len(w.keychain) == 0 {
			return nil, ErrNoKeys
		}
		var err error
		changePkScript, err = changeScript(w.keychain[0])
		if err != nil {
			return nil, err
		}
	}

	tx := &chain.Transaction{Version: 1, LockTime: 0}
	for _, sel := range picked {
		tx.Inputs = append(tx.Inputs, chain.TxIn{
			PreviousOutput: chain.OutPoint{Hash: sel.wtx.Tx.TxID(), Index: sel.index},
			Sequence:       chain.DefaultSequence,
		})
	}
	tx.Outputs = append(tx.Outputs, chain.TxOut{Value: value, PkScript: toPkScript})
	if total > value {
		tx.Outputs = append(tx.Outputs, chain.TxOut{Value: total - value, PkScript: changePkScript})
	}

	for i, sel := range picked {
		sigScript, err := signInput(tx, i, sel.out.PkScript, sel.owner)
		if err != nil {
			return nil, err
		}
		tx.Inputs[i].ScriptSig = sigScript
	}

	return tx, nil
}

func changeScript(k *keys.EcKey) ([]byte, error) {
	s, err := keys.PayToAddressScript(k.PubKeyHash())
	if err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// signInput computes the legacy sighash for input index of tx — the
// transaction's serialization with every other input's script blanked and
// the signed input's script replaced by prevPkScript, followed by the
// sighash type as a little-endian u32 — and returns the finished scriptSig.
func signInput(tx *chain.Transaction, index int, prevPkScript []byte, signer *keys.EcKey) ([]byte, error) {
	digest := legacySighash(tx, index, prevPkScript, SighashAll)

	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}

	sigWithType := append(append([]byte{}, sig...), byte(SighashAll))

	var script []byte
	script = wire.EncodeVarInt(script, uint64(len(sigWithType)))
	script = append(script, sigWithType...)
	pub := signer.PubKeyBytes()
	script = wire.EncodeVarInt(script, uint64(len(pub)))
	script = append(script, pub...)
	return script, nil
}

// legacySighash builds the pre-fork-id signature digest described in §4.8
// step 3: every input's scriptSig is emptied except the one being signed,
// which is substituted with prevPkScript, then the whole transaction is
// serialized and the sighash type appended before double-hashing.
func legacySighash(tx *chain.Transaction, index int, prevPkScript []byte, sighashType uint32) []byte {
	shallow := &chain.Transaction{
		Version:  tx.Version,
		Outputs:  tx.Outputs,
		LockTime: tx.LockTime,
	}
	shallow.Inputs = make([]chain.TxIn, len(tx.Inputs))
	for i, in := range tx.Inputs {
		script := in.ScriptSig
		if i == index {
			script = prevPkScript
		} else {
			script = nil
		}
		shallow.Inputs[i] = chain.TxIn{
			PreviousOutput: in.PreviousOutput,
			ScriptSig:      script,
			Sequence:       in.Sequence,
		}
	}

	buf := shallow.Serialize()
	buf = wire.PutUint32LE(buf, sighashType)
	return wire.DoubleSHA256(buf)
}

// ConfirmSend moves tx's wallet-visible part into pending so its inputs
// are treated as spent for the available balance. It emits no event, and
// accepts transactions not produced by CreateSend.
func (w *Wallet) ConfirmSend(tx *chain.Transaction) error {
	if tx == nil {
		return ErrNilParam
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	key := txKey(tx)
	w.moveTo(key, newWalletTx(tx, nil), Pending)
	return nil
}

// SendCoins builds a transaction paying value to toPkScript, confirms it
// into the pending pool, and broadcasts it through peer.
func (w *Wallet) SendCoins(peer Broadcaster, toPkScript []byte, value int64) (*chain.Transaction, error) {
	tx, err := w.CreateSend(toPkScript, value, nil)
	if err != nil {
		return nil, err
	}
	if err := w.ConfirmSend(tx); err != nil {
		return nil, err
	}
	if err := peer.Broadcast(tx); err != nil {
		return nil, err
	}
	return tx, nil
}
