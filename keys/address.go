package keys

import (
	"fmt"

	"github.com/bitfsorg/spvpeer-go/wire"
	"github.com/mr-tron/base58"
)

// AddressVersion is the network version byte prefixed to a pay-to-address
// hash before Base58Check encoding.
type AddressVersion byte

const (
	// MainnetAddressVersion is the production pay-to-address prefix.
	MainnetAddressVersion AddressVersion = 0x00

	// TestnetAddressVersion is the test-network pay-to-address prefix.
	TestnetAddressVersion AddressVersion = 0x6f
)

// checksumSize is the length, in bytes, of the Base58Check checksum suffix.
const checksumSize = 4

// EncodeAddress renders a 20-byte public key hash as Base58Check:
// base58(version || hash || first4(doubleSHA256(version || hash))).
func EncodeAddress(pubKeyHash []byte, version AddressVersion) (string, error) {
	if len(pubKeyHash) != 20 {
		return "", ErrInvalidPubKeyHash
	}

	payload := make([]byte, 0, 1+len(pubKeyHash)+checksumSize)
	payload = append(payload, byte(version))
	payload = append(payload, pubKeyHash...)

	sum := wire.DoubleSHA256(payload)
	payload = append(payload, sum[:checksumSize]...)

	return base58.Encode(payload), nil
}

// DecodeAddress parses a Base58Check address, validating its checksum.
// It returns the 20-byte public key hash and the network version byte.
func DecodeAddress(addr string) (pubKeyHash []byte, version AddressVersion, err error) {
	payload, err := base58.Decode(addr)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(payload) != 1+20+checksumSize {
		return nil, 0, fmt.Errorf("%w: unexpected length %d", ErrInvalidAddress, len(payload))
	}

	prefix := payload[:1+20]
	wantSum := payload[1+20:]

	gotSum := wire.DoubleSHA256(prefix)
	for i := 0; i < checksumSize; i++ {
		if gotSum[i] != wantSum[i] {
			return nil, 0, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
		}
	}

	return prefix[1:], AddressVersion(prefix[0]), nil
}
