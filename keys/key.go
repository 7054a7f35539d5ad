package keys

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// EcKey pairs a secp256k1 private key with its derived public key, per
// §4.4's key & address model. A key may be public-only (Priv nil), in
// which case Sign returns an error.
type EcKey struct {
	Priv *ec.PrivateKey
	Pub  *ec.PublicKey
}

// NewEcKey generates a fresh key pair from a secure random source.
func NewEcKey() (*EcKey, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("keys: generate: %w", err)
	}
	return &EcKey{Priv: priv, Pub: priv.PubKey()}, nil
}

// EcKeyFromPrivateBytes reconstructs a key pair from a 32-byte private scalar.
func EcKeyFromPrivateBytes(b []byte) (*EcKey, error) {
	priv, pub := ec.PrivateKeyFromBytes(b)
	return &EcKey{Priv: priv, Pub: pub}, nil
}

// EcKeyFromPublicBytes wraps a compressed or uncompressed public key with no
// associated private key. Sign will fail on the result.
func EcKeyFromPublicBytes(b []byte) (*EcKey, error) {
	pub, err := ec.PublicKeyFromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("keys: parse public key: %w", err)
	}
	return &EcKey{Pub: pub}, nil
}

// PubKeyBytes returns the compressed public key encoding.
func (k *EcKey) PubKeyBytes() []byte {
	return k.Pub.Compressed()
}

// PubKeyHash returns RIPEMD160(SHA256(pubkey)), the 20-byte address payload.
func (k *EcKey) PubKeyHash() []byte {
	return bsvhash.Hash160(k.Pub.Compressed())
}

// Sign produces a DER-encoded ECDSA signature over a 32-byte digest.
func (k *EcKey) Sign(hash []byte) ([]byte, error) {
	if k.Priv == nil {
		return nil, fmt.Errorf("keys: sign: %w: no private key", ErrNilParam)
	}
	sig, err := k.Priv.Sign(hash)
	if err != nil {
		return nil, fmt.Errorf("keys: sign: %w", err)
	}
	return sig.Serialize(), nil
}

// Verify checks a DER-encoded signature over a 32-byte digest against this
// key's public key.
func (k *EcKey) Verify(hash, sig []byte) (bool, error) {
	parsed, err := ec.ParseSignature(sig)
	if err != nil {
		return false, fmt.Errorf("keys: parse signature: %w", err)
	}
	return parsed.Verify(hash, k.Pub), nil
}

// ToAddress renders this key's pay-to-address form under net.
func (k *EcKey) ToAddress(net AddressVersion) (string, error) {
	return EncodeAddress(k.PubKeyHash(), net)
}
