package wallet

import (
	"bytes"
	"encoding/hex"

	"github.com/bitfsorg/spvpeer-go/chain"
)

// BalanceKind selects which of the two balance figures defined in §3 to report.
type BalanceKind int

const (
	// Available is the sum of confirmed outputs not yet spent by any known
	// transaction, confirmed or pending.
	Available BalanceKind = iota
	// Estimated additionally accounts for pending transactions: available
	// plus what pending transactions pay us. What they spend of ours is
	// already left out of available, so it is not subtracted again.
	Estimated
)

// valueSentToMe sums tx's outputs that pay one of our keys.
func (w *Wallet) valueSentToMe(tx *chain.Transaction) int64 {
	var total int64
	for _, out := range tx.Outputs {
		if _, owned := w.ownerOf(out.PkScript); owned {
			total += out.Value
		}
	}
	return total
}

// valueSentFromMe sums tx's inputs whose referenced previous output we own
// and can resolve against a transaction already known to the wallet.
func (w *Wallet) valueSentFromMe(tx *chain.Transaction) int64 {
	var total int64
	for _, in := range tx.Inputs {
		out, owned := w.resolveOwnedOutput(in.PreviousOutput)
		if owned {
			total += out.Value
		}
	}
	return total
}

// resolveOwnedOutput looks up the output referenced by op across all four
// pools and reports whether it pays one of our keys.
func (w *Wallet) resolveOwnedOutput(op chain.OutPoint) (*chain.TxOut, bool) {
	key := hex.EncodeToString(op.Hash)
	wtx, _, ok := w.find(key)
	if !ok {
		return nil, false
	}
	if int(op.Index) >= len(wtx.Tx.Outputs) {
		return nil, false
	}
	out := &wtx.Tx.Outputs[op.Index]
	if _, owned := w.ownerOf(out.PkScript); !owned {
		return nil, false
	}
	return out, true
}

// isSpentForAvailable reports whether output index of wtx is
// spent by a confirmed transaction or referenced as an input by a pending
// one — either way it no longer counts toward the available balance.
func (w *Wallet) isSpentForAvailable(wtx *WalletTx, index uint32) bool {
	if wtx.SpentBy[index] {
		return true
	}
	outpointHash := wtx.Tx.TxID()
	spent := false
	w.pending.inOrder(func(_ string, pendingTx *WalletTx) bool {
		for _, in := range pendingTx.Tx.Inputs {
			if bytes.Equal(in.PreviousOutput.Hash, outpointHash) && in.PreviousOutput.Index == index {
				spent = true
				return false
			}
		}
		return true
	})
	return spent
}

// GetBalance returns the wallet's available or estimated balance, per §3.
func (w *Wallet) GetBalance(kind BalanceKind) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balanceLocked(kind)
}

func (w *Wallet) balanceLocked(kind BalanceKind) int64 {
	var available int64
	for _, pool := range []*orderedPool{w.unspent, w.spent} {
		pool.inOrder(func(_ string, wtx *WalletTx) bool {
			for i, out := range wtx.Tx.Outputs {
				if _, owned := w.ownerOf(out.PkScript); !owned {
					continue
				}
				if w.isSpentForAvailable(wtx, uint32(i)) {
					continue
				}
				available += out.Value
			}
			return true
		})
	}

	if kind == Available {
		return available
	}

	estimated := available
	w.pending.inOrder(func(_ string, wtx *WalletTx) bool {
		estimated += w.valueSentToMe(wtx.Tx)
		return true
	})
	return estimated
}
