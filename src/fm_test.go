package satradio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFMModulatorPhasorEnergyStable(t *testing.T) {
	// After N=INT16_MAX samples, |phasor|^2 should stay within 1% of
	// (INT32_MAX-INT16_MAX)^2.
	var m = NewFMModulator(192000, 0, 75000, int16Max)

	var in = make([]int16, int16Max)
	for i := range in {
		in[i] = int16((i*7 + 3) % 65536 - 32768)
	}
	var out = make([]int16, len(in))
	m.ProcessReal(in, out)

	var want = math.Pow(float64(int32Max-int16Max), 2)
	var got = m.PhasorEnergy()
	assert.InEpsilon(t, want, got, 0.01)
}

func TestFMModulatorPhasorEnergyStableMidPeriod(t *testing.T) {
	// Checking only at the renorm checkpoint hides a rotation vector
	// scaled below unit magnitude, since the checkpoint resets the
	// phasor regardless; sample mid-period too.
	var m = NewFMModulator(192000, 0, 75000, int16Max)

	var in = make([]int16, fmRenormPeriod/2)
	for i := range in {
		in[i] = int16((i*7 + 3) % 65536 - 32768)
	}
	var out = make([]int16, len(in))
	m.ProcessReal(in, out)

	var want = math.Pow(float64(int32Max-int16Max), 2)
	var got = m.PhasorEnergy()
	assert.InEpsilon(t, want, got, 0.01)
}

func TestFMModulatorRenormalisesPeriodically(t *testing.T) {
	var m = NewFMModulator(192000, 1000, 5000, int16Max)

	var before = m.PhasorEnergy()
	var in = make([]int16, fmRenormPeriod)
	var out = make([]int16, len(in))
	m.ProcessReal(in, out)
	var after = m.PhasorEnergy()

	var want = math.Pow(float64(int32Max-int16Max), 2)
	assert.InEpsilon(t, want, after, 0.01)
	_ = before
}

func TestFMModulatorComplexOutputNonTrivial(t *testing.T) {
	var m = NewFMModulator(192000, 0, 75000, int16Max)
	var in = []int16{100, -200, 300, 0, 32767, -32768}

	var outC = make([]IQSample, len(in))
	m.ProcessComplex(in, outC)

	var anyNonZero = false
	for _, s := range outC {
		if s.I != 0 || s.Q != 0 {
			anyNonZero = true
		}
	}
	assert.True(t, anyNonZero, "modulator should produce a non-trivial rotating phasor")
}
