package keys

import (
	"github.com/bsv-blockchain/go-sdk/script"
)

// PayToAddressScript builds a standard pay-to-public-key-hash locking
// script: OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
func PayToAddressScript(pubKeyHash []byte) (*script.Script, error) {
	if len(pubKeyHash) != 20 {
		return nil, ErrInvalidPubKeyHash
	}

	s := &script.Script{}
	if err := s.AppendOpcodes(script.OpDUP); err != nil {
		return nil, err
	}
	if err := s.AppendOpcodes(script.OpHASH160); err != nil {
		return nil, err
	}
	if err := s.AppendPushData(pubKeyHash); err != nil {
		return nil, err
	}
	if err := s.AppendOpcodes(script.OpEQUALVERIFY); err != nil {
		return nil, err
	}
	if err := s.AppendOpcodes(script.OpCHECKSIG); err != nil {
		return nil, err
	}
	return s, nil
}

// IsPayToAddressScript reports whether pkScript has the standard
// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG shape, and if so
// returns the embedded public key hash.
func IsPayToAddressScript(pkScript []byte) (pubKeyHash []byte, ok bool) {
	if len(pkScript) != 25 {
		return nil, false
	}
	if pkScript[0] != byte(script.OpDUP) || pkScript[1] != byte(script.OpHASH160) {
		return nil, false
	}
	if pkScript[2] != 0x14 { // push 20 bytes
		return nil, false
	}
	if pkScript[23] != byte(script.OpEQUALVERIFY) || pkScript[24] != byte(script.OpCHECKSIG) {
		return nil, false
	}
	return pkScript[3:23], true
}
