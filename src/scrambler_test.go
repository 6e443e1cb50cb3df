package satradio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestScramblerFirstBit(t *testing.T) {
	// ssr=0, sc=0, input bit 0 -> carry from ++sc=1 (1>>5=0), out=1.
	var s ScramblerState
	assert.Equal(t, byte(1), s.Step(0))
}

func TestScramblerDescramblerRoundTrip(t *testing.T) {
	// Scrambler and descrambler both start from the zero state and the
	// descrambler's register is driven by the received (scrambled) bit,
	// so the two stay in lock-step from the first bit: self-synchronising
	// here means a receiver that starts mid-stream converges within the
	// 20-bit register width, not that a synchronized pair needs warm-up.
	rapid.Check(t, func(t *rapid.T) {
		var in = rapid.SliceOfN(rapid.Byte(), 1, 576).Draw(t, "in")

		var scr ScramblerState
		var scrambled = ScrambleBlock(&scr, in)

		var descr DescramblerState
		var recovered = DescrambleBlock(&descr, scrambled)

		assert.Equal(t, in, recovered)
	})
}

func TestScramblerMidStreamConvergesWithin20Bits(t *testing.T) {
	// A descrambler joining an already-running scrambled stream (its own
	// register starts at zero while the scrambler's does not) must
	// converge to correct output within 20 bits.
	var in = make([]byte, 64)
	for i := range in {
		in[i] = byte(i * 37)
	}

	var scr ScramblerState
	// Run the scrambler through a warm-up prefix to desynchronise its
	// register from a freshly-constructed descrambler's zero state.
	_ = ScrambleBlock(&scr, make([]byte, 16))
	var scrambled = ScrambleBlock(&scr, in)

	var descr DescramblerState
	var recovered = DescrambleBlock(&descr, scrambled)

	var totalBits = len(in) * 8
	for i := 20; i < totalBits; i++ {
		var byteIdx = i / 8
		var mask = byte(0x80 >> (i % 8))
		assert.Equal(t, in[byteIdx]&mask, recovered[byteIdx]&mask,
			"bit %d mismatched after convergence window", i)
	}
}
