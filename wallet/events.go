package wallet

import "github.com/bitfsorg/spvpeer-go/chain"

// Listener receives wallet events, per §9's narrow observer model. Listener
// methods run synchronously on the thread that produced the event and must
// not call back into mutating wallet operations.
type Listener interface {
	// CoinsReceived fires when a confirmed transaction pays us a positive
	// amount, reporting the wallet's balance before and after.
	CoinsReceived(tx *chain.Transaction, prevBalance, newBalance int64)

	// DeadTransaction fires when a confirmed transaction double-spends an
	// input also referenced by a transaction we already knew about; dead
	// is the transaction that lost, replacement is the one that confirmed.
	DeadTransaction(dead, replacement *chain.Transaction)
}

// ChainProgressListener optionally receives block-download progress, kept
// separate from Listener so observers that only care about coin events
// need not implement it.
type ChainProgressListener interface {
	ChainDownloadProgress(height, bestHeight uint32)
}

// AddListener registers l to receive future wallet events.
func (w *Wallet) AddListener(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

func (w *Wallet) notifyCoinsReceived(tx *chain.Transaction, prev, cur int64) {
	for _, l := range w.listeners {
		l.CoinsReceived(tx, prev, cur)
	}
}

func (w *Wallet) notifyDeadTransaction(dead, replacement *chain.Transaction) {
	for _, l := range w.listeners {
		l.DeadTransaction(dead, replacement)
	}
}
