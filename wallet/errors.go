package wallet

import "errors"

var (
	// ErrInsufficientFunds indicates coin selection could not cover the
	// requested send value from the unspent pool.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")

	// ErrNoKeys indicates an operation needs a keychain address but none
	// has been added to the wallet.
	ErrNoKeys = errors.New("wallet: no keys in keychain")

	// ErrTxNotFound indicates a transaction is not present in any pool.
	ErrTxNotFound = errors.New("wallet: transaction not found")

	// ErrNilParam indicates a required argument was nil.
	ErrNilParam = errors.New("wallet: required argument is nil")

	// ErrDecryptionFailed indicates a wrong password or corrupted wallet file.
	ErrDecryptionFailed = errors.New("wallet: decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates the wallet blob checksum failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: checksum mismatch")

	// ErrInvalidWalletFile indicates the wallet file is too short or malformed.
	ErrInvalidWalletFile = errors.New("wallet: invalid wallet file")

	// ErrInvalidValue indicates a requested send value is zero or negative.
	ErrInvalidValue = errors.New("wallet: send value must be positive")
)
