package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcKey_SignVerifyRoundTrip(t *testing.T) {
	key, err := NewEcKey()
	require.NoError(t, err)

	digest := make([]byte, 32)
	for i := range digest {
		digest[i] = byte(i)
	}

	sig, err := key.Sign(digest)
	require.NoError(t, err)

	ok, err := key.Verify(digest, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEcKey_Verify_RejectsWrongDigest(t *testing.T) {
	key, err := NewEcKey()
	require.NoError(t, err)

	digest := make([]byte, 32)
	sig, err := key.Sign(digest)
	require.NoError(t, err)

	wrong := make([]byte, 32)
	wrong[0] = 0xFF
	ok, err := key.Verify(wrong, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEcKey_Sign_NoPrivateKeyFails(t *testing.T) {
	key, err := NewEcKey()
	require.NoError(t, err)

	pubOnly, err := EcKeyFromPublicBytes(key.PubKeyBytes())
	require.NoError(t, err)

	_, err = pubOnly.Sign(make([]byte, 32))
	assert.Error(t, err)
}

func TestEcKeyFromPrivateBytes_DerivesSamePublicKey(t *testing.T) {
	key, err := NewEcKey()
	require.NoError(t, err)

	rederived, err := EcKeyFromPrivateBytes(key.Priv.Serialize())
	require.NoError(t, err)

	assert.Equal(t, key.PubKeyBytes(), rederived.PubKeyBytes())
}

func TestEcKey_ToAddress(t *testing.T) {
	key, err := NewEcKey()
	require.NoError(t, err)

	addr, err := key.ToAddress(MainnetAddressVersion)
	require.NoError(t, err)
	assert.NotEmpty(t, addr)

	hash, version, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, MainnetAddressVersion, version)
	assert.Equal(t, key.PubKeyHash(), hash)
}
