package wallet

import (
	"encoding/hex"

	"github.com/bitfsorg/spvpeer-go/chain"
)

// Pool identifies one of the four lifecycle pools a wallet-relevant
// transaction lives in, per §3's wallet pools table.
type Pool int

const (
	Unspent Pool = iota
	Spent
	Pending
	Dead
)

func (p Pool) String() string {
	switch p {
	case Unspent:
		return "unspent"
	case Spent:
		return "spent"
	case Pending:
		return "pending"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// orderedPool is a map keyed by txid that also tracks insertion order, so
// coin selection can iterate the unspent pool in the order §4.8 requires.
type orderedPool struct {
	order []string
	items map[string]*WalletTx
}

func newOrderedPool() *orderedPool {
	return &orderedPool{items: make(map[string]*WalletTx)}
}

func (p *orderedPool) put(key string, wtx *WalletTx) {
	if _, exists := p.items[key]; !exists {
		p.order = append(p.order, key)
	}
	p.items[key] = wtx
}

func (p *orderedPool) delete(key string) {
	if _, exists := p.items[key]; !exists {
		return
	}
	delete(p.items, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *orderedPool) get(key string) (*WalletTx, bool) {
	wtx, ok := p.items[key]
	return wtx, ok
}

// inOrder calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (p *orderedPool) inOrder(fn func(key string, wtx *WalletTx) bool) {
	for _, key := range p.order {
		wtx, ok := p.items[key]
		if !ok {
			continue
		}
		if !fn(key, wtx) {
			return
		}
	}
}

func (p *orderedPool) len() int { return len(p.order) }

// txKey returns the lookup key used across all four pool maps.
func txKey(tx *chain.Transaction) string {
	return hex.EncodeToString(tx.TxID())
}

// txKeyFromHash returns the lookup key for a raw txid.
func txKeyFromHash(txid []byte) string {
	return hex.EncodeToString(txid)
}

// poolMap returns the ordered pool backing the given Pool.
func (w *Wallet) poolMap(p Pool) *orderedPool {
	switch p {
	case Unspent:
		return w.unspent
	case Spent:
		return w.spent
	case Pending:
		return w.pending
	case Dead:
		return w.dead
	default:
		return nil
	}
}

// find locates a WalletTx by txid across all four pools.
func (w *Wallet) find(key string) (*WalletTx, Pool, bool) {
	for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
		if wtx, ok := w.poolMap(p).get(key); ok {
			return wtx, p, true
		}
	}
	return nil, 0, false
}

// moveTo removes key from every pool and inserts wtx into dest.
func (w *Wallet) moveTo(key string, wtx *WalletTx, dest Pool) {
	for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
		w.poolMap(p).delete(key)
	}
	w.poolMap(dest).put(key, wtx)
}

// remove deletes key from every pool.
func (w *Wallet) remove(key string) {
	for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
		w.poolMap(p).delete(key)
	}
}
