package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/bitfsorg/spvpeer-go/chain"
)

// referencesOutpoint reports whether tx spends op as one of its inputs.
func referencesOutpoint(tx *chain.Transaction, op chain.OutPoint) bool {
	for _, in := range tx.Inputs {
		if bytes.Equal(in.PreviousOutput.Hash, op.Hash) && in.PreviousOutput.Index == op.Index {
			return true
		}
	}
	return false
}

// Receive implements §4.8's confirmation algorithm. block may be nil for a
// loose (unconfirmed) transaction. kind distinguishes a block on the best
// chain from one on a side chain, which the wallet remembers but does not
// yet apply to its pools.
func (w *Wallet) Receive(tx *chain.Transaction, block *chain.Block, kind chain.ConnectKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.receiveLocked(tx, block, kind)
}

func (w *Wallet) receiveLocked(tx *chain.Transaction, block *chain.Block, kind chain.ConnectKind) {
	if kind == chain.SideChain {
		if block != nil && block.Header != nil {
			w.sideChainBlocks[hex.EncodeToString(block.Header.Hash)] = block
		}
		return
	}

	key := txKey(tx)
	var blockHash []byte
	if block != nil && block.Header != nil {
		blockHash = block.Header.Hash
	}

	prevBalance := w.balanceLocked(Available)

	// Step 2: a confirming transaction leaves the pending pool.
	if _, pool, ok := w.find(key); ok && pool == Pending {
		w.remove(key)
	}

	// Step 3: mark spent any output our unspent pool holds that this
	// transaction's inputs reference.
	for _, in := range tx.Inputs {
		refKey := hex.EncodeToString(in.PreviousOutput.Hash)
		refWtx, refPool, ok := w.find(refKey)
		if !ok || refPool != Unspent {
			continue
		}
		refWtx.SpentBy[in.PreviousOutput.Index] = true
		if refWtx.allOutputsToUsSpent(w) {
			w.moveTo(refKey, refWtx, Spent)
		}
	}

	// Step 4: Finney-attack detection. Any other known transaction that
	// references one of tx's inputs lost the race; it moves to dead.
	for _, in := range tx.Inputs {
		for _, p := range []Pool{Pending, Unspent, Spent} {
			var toKill []string
			w.poolMap(p).inOrder(func(ck string, cwtx *WalletTx) bool {
				if ck != key && referencesOutpoint(cwtx.Tx, in.PreviousOutput) {
					toKill = append(toKill, ck)
				}
				return true
			})
			for _, ck := range toKill {
				cwtx, _ := w.poolMap(p).get(ck)
				dead := cwtx.Tx
				w.moveTo(ck, cwtx, Dead)
				w.notifyDeadTransaction(dead, tx)
			}
		}
	}

	// Step 5: credit anything tx pays us. If a later transaction in this
	// same block spends it, step 3 above (run for that later transaction)
	// will promote it from unspent to spent.
	valueToMe := w.valueSentToMe(tx)
	if valueToMe > 0 {
		w.moveTo(key, newWalletTx(tx, blockHash), Unspent)
		newBalance := w.balanceLocked(Available)
		w.notifyCoinsReceived(tx, prevBalance, newBalance)
	}
}
