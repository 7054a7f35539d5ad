package wallet

import (
	"encoding/hex"

	"github.com/bitfsorg/spvpeer-go/chain"
)

// Connect implements chain.BlockListener: every transaction in block is
// replayed through Receive with the given kind, which is how the wallet
// both tracks best-chain confirmations and notices side chains. A
// header-only best-chain block (as a reorganization delivers) is replayed
// with the transactions of the side-chain block remembered under its hash.
func (w *Wallet) Connect(block *chain.Block, kind chain.ConnectKind) {
	txs := block.Txs
	if len(txs) == 0 && kind == chain.BestChain && block.Header != nil {
		w.mu.Lock()
		if remembered, ok := w.sideChainBlocks[hex.EncodeToString(block.Header.Hash)]; ok {
			txs = remembered.Txs
		}
		w.mu.Unlock()
	}
	for _, tx := range txs {
		w.Receive(tx, block, kind)
	}
}

// Disconnect implements chain.BlockListener: reverses the confirmation
// transitions Receive applied for every wallet-relevant transaction in
// block, during a reorganization's removal of the old branch.
func (w *Wallet) Disconnect(block *chain.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := len(block.Txs) - 1; i >= 0; i-- {
		w.disconnectTxLocked(block.Txs[i])
	}
}

func (w *Wallet) disconnectTxLocked(tx *chain.Transaction) {
	key := txKey(tx)

	// Undo step 3: unmark any output this transaction's inputs had spent,
	// moving the referenced transaction back to unspent if needed.
	for _, in := range tx.Inputs {
		refKey := txKeyFromHash(in.PreviousOutput.Hash)
		refWtx, refPool, ok := w.find(refKey)
		if !ok {
			continue
		}
		delete(refWtx.SpentBy, in.PreviousOutput.Index)
		if refPool == Spent {
			w.moveTo(refKey, refWtx, Unspent)
		}
	}

	// Undo step 5: if this transaction paid us, it no longer has a
	// confirmation; put it back in pending so a future block can reconfirm
	// or permanently drop it.
	if wtx, pool, ok := w.find(key); ok && pool != Dead {
		wtx.BlockHash = nil
		w.moveTo(key, wtx, Pending)
	}
}
