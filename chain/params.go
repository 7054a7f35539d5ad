package chain

// NetworkParams carries the network-scoped constants that drive difficulty
// retargeting, address encoding, and peer discovery. Every network the
// engine can run against (prod, test, and the accelerated unit-test
// network used by difficulty fixtures) is represented as one of these.
type NetworkParams struct {
	Name string

	// Magic is the 4-byte network magic as it appears on the wire.
	Magic uint32

	// Port is the default TCP port for this network.
	Port uint16

	// AddressHeader is the version byte prefixed to a Base58Check address.
	AddressHeader byte

	// ProofOfWorkLimit is the easiest allowed difficulty target (compact form).
	ProofOfWorkLimit uint32

	// TargetTimespanSeconds is the time a full retarget interval should take.
	TargetTimespanSeconds int64

	// Interval is the number of blocks between difficulty retargets.
	Interval uint32
}

const (
	// MaxDifficultyAdjustmentFactor bounds a single retarget step: the new
	// target may not move by more than this factor in either direction.
	MaxDifficultyAdjustmentFactor = 4
)

// MainnetParams are the production BSV network parameters.
var MainnetParams = NetworkParams{
	Name:                  "mainnet",
	Magic:                 0xF9BEB4D9,
	Port:                  8333,
	AddressHeader:         0x00,
	ProofOfWorkLimit:      0x1D00FFFF,
	TargetTimespanSeconds: 14 * 24 * 60 * 60,
	Interval:              2016,
}

// TestnetParams are the public test network parameters.
var TestnetParams = NetworkParams{
	Name:                  "testnet",
	Magic:                 0xFABFB5DA,
	Port:                  18333,
	AddressHeader:         0x6F,
	ProofOfWorkLimit:      0x1D0FFFFF,
	TargetTimespanSeconds: 14 * 24 * 60 * 60,
	Interval:              2016,
}

// UnitTestParams is an accelerated network used by difficulty-transition
// fixtures: a 10-block interval and a 200-second timespan make retargeting
// observable without mining thousands of headers.
var UnitTestParams = NetworkParams{
	Name:                  "unittest",
	Magic:                 0xFABFB5DA,
	Port:                  18333,
	AddressHeader:         0x6F,
	ProofOfWorkLimit:      0x207FFFFF,
	TargetTimespanSeconds: 200,
	Interval:              10,
}

// ParamsForNetwork resolves a network name ("mainnet", "testnet", "regtest"
// or "unittest") to its NetworkParams. Unknown names fall back to mainnet.
func ParamsForNetwork(name string) NetworkParams {
	switch name {
	case "testnet":
		return TestnetParams
	case "regtest", "unittest":
		return UnitTestParams
	default:
		return MainnetParams
	}
}
