package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/keys"
)

var bucketKeys = []byte("keys")

func poolBucket(p Pool) []byte {
	return []byte("pool_" + p.String())
}

func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// seqKey encodes a bbolt auto-increment sequence as an 8-byte big-endian
// key, so a bucket's cursor order matches insertion order.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// SaveToBolt writes the wallet's keychain and all four pools to an
// unencrypted bbolt database at dbPath, preserving each pool's insertion
// order via sequence-numbered keys. This is the unencrypted counterpart
// to SaveToFile, useful for a node that already protects dbPath at the
// filesystem level.
func (w *Wallet) SaveToBolt(dbPath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return fmt.Errorf("wallet: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("wallet: open bolt db: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketKeys); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		keysBucket, err := tx.CreateBucket(bucketKeys)
		if err != nil {
			return err
		}
		for _, k := range w.keychain {
			wfk := walletFileKey{PubBytes: k.PubKeyBytes()}
			if k.Priv != nil {
				wfk.PrivBytes = k.Priv.Serialize()
			}
			data, err := encodeGob(wfk)
			if err != nil {
				return err
			}
			seq, _ := keysBucket.NextSequence()
			if err := keysBucket.Put(seqKey(seq), data); err != nil {
				return err
			}
		}

		for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
			name := poolBucket(p)
			if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
				return err
			}
			bucket, err := tx.CreateBucket(name)
			if err != nil {
				return err
			}
			var putErr error
			w.poolMap(p).inOrder(func(_ string, wtx *WalletTx) bool {
				ft := walletFileTx{Pool: p, TxBytes: wtx.Tx.Serialize(), BlockHash: wtx.BlockHash}
				for idx := range wtx.SpentBy {
					if wtx.SpentBy[idx] {
						ft.SpentBy = append(ft.SpentBy, idx)
					}
				}
				data, err := encodeGob(ft)
				if err != nil {
					putErr = err
					return false
				}
				seq, _ := bucket.NextSequence()
				if err := bucket.Put(seqKey(seq), data); err != nil {
					putErr = err
					return false
				}
				return true
			})
			if putErr != nil {
				return putErr
			}
		}

		return nil
	})
}

// LoadFromBolt reconstructs a wallet previously written by SaveToBolt,
// restoring each pool's original insertion order from the cursor order of
// its bucket's sequence-numbered keys.
func LoadFromBolt(dbPath string, net keys.AddressVersion) (*Wallet, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("wallet: open bolt db: %w", err)
	}
	defer db.Close()

	w := NewWallet(net)

	err = db.View(func(tx *bbolt.Tx) error {
		if keysBucket := tx.Bucket(bucketKeys); keysBucket != nil {
			cur := keysBucket.Cursor()
			for k, v := cur.First(); k != nil; k, v = cur.Next() {
				var wfk walletFileKey
				if err := decodeGob(v, &wfk); err != nil {
					return err
				}
				var key *keys.EcKey
				var err error
				if len(wfk.PrivBytes) > 0 {
					key, err = keys.EcKeyFromPrivateBytes(wfk.PrivBytes)
				} else {
					key, err = keys.EcKeyFromPublicBytes(wfk.PubBytes)
				}
				if err != nil {
					return err
				}
				w.keychain = append(w.keychain, key)
			}
		}

		for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
			bucket := tx.Bucket(poolBucket(p))
			if bucket == nil {
				continue
			}
			cur := bucket.Cursor()
			for k, v := cur.First(); k != nil; k, v = cur.Next() {
				var ft walletFileTx
				if err := decodeGob(v, &ft); err != nil {
					return err
				}
				txn, err := chain.DeserializeTransaction(ft.TxBytes)
				if err != nil {
					return err
				}
				wtx := newWalletTx(txn, ft.BlockHash)
				for _, idx := range ft.SpentBy {
					wtx.SpentBy[idx] = true
				}
				w.poolMap(p).put(txKey(txn), wtx)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}
