// Package wallet implements the four-pool SPV wallet: tracking of unspent
// outputs, balance calculation, coin selection, transaction construction
// and signing, and reorg-driven replay of confirmations.
package wallet

import (
	"bytes"
	"sync"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/keys"
)

// WalletTx wraps a transaction with the bookkeeping the wallet needs beyond
// the transaction's own fields: which block (if any) confirmed it, and
// which of its outputs paying us have since been spent.
type WalletTx struct {
	Tx        *chain.Transaction
	BlockHash []byte // nil while tx is unconfirmed (pending)
	SpentBy   map[uint32]bool
}

func newWalletTx(tx *chain.Transaction, blockHash []byte) *WalletTx {
	return &WalletTx{Tx: tx, BlockHash: blockHash, SpentBy: make(map[uint32]bool)}
}

// allOutputsToUsSpent reports whether every output wtx.Tx pays to an
// address we own has been marked spent.
func (wtx *WalletTx) allOutputsToUsSpent(w *Wallet) bool {
	for i, out := range wtx.Tx.Outputs {
		if _, owned := w.ownerOf(out.PkScript); owned && !wtx.SpentBy[uint32(i)] {
			return false
		}
	}
	return true
}

// Wallet is the four-pool SPV wallet described in §4.8: unspent, spent,
// pending, and dead transactions, plus the keychain of addresses it watches.
type Wallet struct {
	mu sync.Mutex

	net      keys.AddressVersion
	keychain []*keys.EcKey

	unspent *orderedPool
	spent   *orderedPool
	pending *orderedPool
	dead    *orderedPool

	// sideChainBlocks remembers blocks seen on a side chain, keyed by block
	// hash, so that a later reorg's Connect call can replay them.
	sideChainBlocks map[string]*chain.Block

	listeners []Listener
}

// Compile-time interface check.
var _ chain.BlockListener = (*Wallet)(nil)

// NewWallet creates an empty wallet for the given network's address version.
func NewWallet(net keys.AddressVersion) *Wallet {
	return &Wallet{
		net:             net,
		unspent:         newOrderedPool(),
		spent:           newOrderedPool(),
		pending:         newOrderedPool(),
		dead:            newOrderedPool(),
		sideChainBlocks: make(map[string]*chain.Block),
	}
}

// AddKey appends a key to the watched keychain. The first key added is the
// default change address used by CreateSend.
func (w *Wallet) AddKey(k *keys.EcKey) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keychain = append(w.keychain, k)
}

// Keychain returns a snapshot of the wallet's watched keys.
func (w *Wallet) Keychain() []*keys.EcKey {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*keys.EcKey, len(w.keychain))
	copy(out, w.keychain)
	return out
}

// ownerOf reports whether pkScript pays one of our keys, returning that key.
func (w *Wallet) ownerOf(pkScript []byte) (*keys.EcKey, bool) {
	hash, ok := keys.IsPayToAddressScript(pkScript)
	if !ok {
		return nil, false
	}
	for _, k := range w.keychain {
		if bytes.Equal(k.PubKeyHash(), hash) {
			return k, true
		}
	}
	return nil, false
}
