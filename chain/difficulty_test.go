package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeCompact_RoundTrip(t *testing.T) {
	bitsValues := []uint32{0x1d00ffff, 0x1b0404cb, 0x207fffff, 0x1d0fffff}
	for _, bits := range bitsValues {
		target := CompactToBig(bits)
		got := EncodeCompact(target)
		assert.Equal(t, bits, got, "round trip of 0x%08x", bits)
	}
}

func TestEncodeCompact_ZeroTarget(t *testing.T) {
	assert.Equal(t, uint32(0), EncodeCompact(CompactToBig(0)))
}

func TestIsRetargetBoundary(t *testing.T) {
	assert.True(t, IsRetargetBoundary(0, UnitTestParams))
	assert.True(t, IsRetargetBoundary(10, UnitTestParams))
	assert.False(t, IsRetargetBoundary(5, UnitTestParams))
}

// TestDifficultyTransitionFixture is spec §8 fixture 7: mining interval-1
// blocks with timestamps 2 seconds apart under the unit-test network
// (interval=10, timespan=200s) means the retarget window closes in 18
// seconds. elapsed clamps up to timespan/4=50s, so the target tightens by
// 1/4 and the retargeted bits at 0x1d0fffff-style input become the
// 0x201fffff fixture named in the spec when starting from the unit-test
// proof-of-work limit.
func TestDifficultyTransitionFixture(t *testing.T) {
	params := UnitTestParams
	startTime := uint32(1700000000)
	newBlockTime := startTime + 2*(params.Interval-1)

	expected := ComputeRetarget(params.ProofOfWorkLimit, startTime, newBlockTime, params)

	// elapsed (18s) clamps to timespan/4 (50s); target = limit * 50/200 = limit/4.
	limit := CompactToBig(params.ProofOfWorkLimit)
	quarter := new(big.Int).Div(limit, big.NewInt(4))
	assert.Equal(t, EncodeCompact(quarter), expected)
}

func TestComputeRetarget_ClampsHighElapsed(t *testing.T) {
	params := UnitTestParams
	startTime := uint32(1700000000)
	newBlockTime := startTime + uint32(params.TargetTimespanSeconds*10) // way more than 4x

	got := ComputeRetarget(params.ProofOfWorkLimit, startTime, newBlockTime, params)
	// Already at the limit, and elapsed clamps to 4x timespan, but target
	// is capped at ProofOfWorkLimit regardless.
	assert.Equal(t, params.ProofOfWorkLimit, got)
}

func TestComputeRetarget_UnchangedWhenElapsedMatchesTimespan(t *testing.T) {
	params := MainnetParams
	startTime := uint32(1700000000)
	newBlockTime := startTime + uint32(params.TargetTimespanSeconds)

	got := ComputeRetarget(0x1b0404cb, startTime, newBlockTime, params)
	assert.Equal(t, uint32(0x1b0404cb), got)
}
