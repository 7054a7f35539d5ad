package wallet

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/keys"
)

// walletFileKey is the gob-serializable form of a keychain entry. A
// pub-only key (no Priv) round-trips with PrivBytes nil.
type walletFileKey struct {
	PrivBytes []byte
	PubBytes  []byte
}

// walletFileTx is the gob-serializable form of one pool entry.
type walletFileTx struct {
	Pool      Pool
	TxBytes   []byte
	BlockHash []byte
	SpentBy   []uint32
}

// walletFile is the full on-disk representation SaveToFile/LoadFromFile
// round-trip: the keychain plus every transaction across all four pools,
// tagged with its pool and insertion order preserved by Txs' slice order.
type walletFile struct {
	Net  keys.AddressVersion
	Keys []walletFileKey
	Txs  []walletFileTx
}

func (w *Wallet) toWalletFile() (*walletFile, error) {
	wf := &walletFile{Net: w.net}

	for _, k := range w.keychain {
		wfk := walletFileKey{PubBytes: k.PubKeyBytes()}
		if k.Priv != nil {
			wfk.PrivBytes = k.Priv.Serialize()
		}
		wf.Keys = append(wf.Keys, wfk)
	}

	for _, p := range []Pool{Unspent, Spent, Pending, Dead} {
		w.poolMap(p).inOrder(func(_ string, wtx *WalletTx) bool {
			ft := walletFileTx{Pool: p, TxBytes: wtx.Tx.Serialize(), BlockHash: wtx.BlockHash}
			for idx := range wtx.SpentBy {
				if wtx.SpentBy[idx] {
					ft.SpentBy = append(ft.SpentBy, idx)
				}
			}
			wf.Txs = append(wf.Txs, ft)
			return true
		})
	}

	return wf, nil
}

func walletFromFile(wf *walletFile) (*Wallet, error) {
	w := NewWallet(wf.Net)

	for _, wfk := range wf.Keys {
		var k *keys.EcKey
		var err error
		if len(wfk.PrivBytes) > 0 {
			k, err = keys.EcKeyFromPrivateBytes(wfk.PrivBytes)
		} else {
			k, err = keys.EcKeyFromPublicBytes(wfk.PubBytes)
		}
		if err != nil {
			return nil, err
		}
		w.keychain = append(w.keychain, k)
	}

	for _, ft := range wf.Txs {
		tx, err := chain.DeserializeTransaction(ft.TxBytes)
		if err != nil {
			return nil, err
		}
		wtx := newWalletTx(tx, ft.BlockHash)
		for _, idx := range ft.SpentBy {
			wtx.SpentBy[idx] = true
		}
		w.poolMap(ft.Pool).put(txKey(tx), wtx)
	}

	return w, nil
}

// SaveToFile encodes the wallet's keychain and all four pools with gob,
// encrypts the result with password, and writes it to path.
func (w *Wallet) SaveToFile(path, password string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	wf, err := w.toWalletFile()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wf); err != nil {
		return err
	}

	encrypted, err := encryptBlob(buf.Bytes(), password)
	if err != nil {
		return err
	}

	return os.WriteFile(path, encrypted, 0600)
}

// LoadFromFile decrypts and decodes a wallet previously written by
// SaveToFile, reconstructing the keychain and all four pools with their
// original insertion order.
func LoadFromFile(path, password string) (*Wallet, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	plaintext, err := decryptBlob(encrypted, password)
	if err != nil {
		return nil, err
	}

	var wf walletFile
	if err := gob.NewDecoder(bytes.NewReader(plaintext)).Decode(&wf); err != nil {
		return nil, ErrInvalidWalletFile
	}

	return walletFromFile(&wf)
}
