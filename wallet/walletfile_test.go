package wallet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/spvpeer-go/chain"
	"github.com/bitfsorg/spvpeer-go/keys"
)

func TestWallet_SaveLoadFile_RoundTrip(t *testing.T) {
	w, k := newTestWallet(t)
	funding := fundingTx(payScript(t, k), 777)
	w.Receive(funding, blockWith(funding), chain.BestChain)

	path := filepath.Join(t.TempDir(), "wallet.dat")
	require.NoError(t, w.SaveToFile(path, "s3cret"))

	loaded, err := LoadFromFile(path, "s3cret")
	require.NoError(t, err)

	assert.Equal(t, w.GetBalance(Available), loaded.GetBalance(Available))
	require.Len(t, loaded.Keychain(), 1)
	assert.Equal(t, k.PubKeyBytes(), loaded.Keychain()[0].PubKeyBytes())

	_, pool, found := loaded.find(txKey(funding))
	require.True(t, found)
	assert.Equal(t, Unspent, pool)
}

func TestWallet_LoadFile_WrongPassword(t *testing.T) {
	w, _ := newTestWallet(t)
	path := filepath.Join(t.TempDir(), "wallet.dat")
	require.NoError(t, w.SaveToFile(path, "s3cret"))

	_, err := LoadFromFile(path, "nope")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestWallet_SaveLoadBolt_RoundTrip(t *testing.T) {
	w, k := newTestWallet(t)
	funding := fundingTx(payScript(t, k), 321)
	w.Receive(funding, blockWith(funding), chain.BestChain)

	path := filepath.Join(t.TempDir(), "wallet.bolt")
	require.NoError(t, w.SaveToBolt(path))

	loaded, err := LoadFromBolt(path, keys.TestnetAddressVersion)
	require.NoError(t, err)

	assert.Equal(t, w.GetBalance(Available), loaded.GetBalance(Available))
	require.Len(t, loaded.Keychain(), 1)
	assert.Equal(t, k.PubKeyBytes(), loaded.Keychain()[0].PubKeyBytes())
}
