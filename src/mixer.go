package satradio

// Complex oscillator + mixer.
//
// Shares its phasor representation and renormalisation with fm.go, but
// the rotation delta here is fixed at construction (an oscillator at a
// compile/config-time frequency f) rather than read per-sample from a
// modulating-signal LUT: a constant per-sample phase increment rather
// than a symbol-driven one.

import "math"

// Mixer rotates an incoming complex IQ stream by a fixed oscillator
// frequency, renormalising periodically like FMModulator.
type Mixer struct {
	delta  fmPhasor
	phasor fmPhasor
	count  int
}

// NewMixer builds an oscillator at frequency f (Hz) for sample rate fs.
func NewMixer(fs float64, f float64) *Mixer {
	var rate = 2 * math.Pi * f / fs
	return &Mixer{
		delta: fmPhasor{
			i: int32(math.Round(math.Cos(rate) * int32Max)),
			q: int32(math.Round(math.Sin(rate) * int32Max)),
		},
		phasor: fmPhasor{i: int32Max - int16Max, q: 0},
	}
}

func (m *Mixer) advance() {
	const round = int64(0x3FFFFFFF)
	var i64 = int64(m.phasor.i)*int64(m.delta.i) - int64(m.phasor.q)*int64(m.delta.q)
	var q64 = int64(m.phasor.i)*int64(m.delta.q) + int64(m.phasor.q)*int64(m.delta.i)

	m.phasor.i = int32((i64 + round) >> 31)
	m.phasor.q = int32((q64 + round) >> 31)

	m.count++
	if m.count >= fmRenormPeriod {
		var angle = math.Atan2(float64(m.phasor.q), float64(m.phasor.i))
		var scale = float64(int32Max - int16Max)
		m.phasor.i = int32(math.Round(math.Cos(angle) * scale))
		m.phasor.q = int32(math.Round(math.Sin(angle) * scale))
		m.count = 0
	}
}

// ProcessComplex mixes in against the running oscillator, writing
// complex IQ to out.
func (m *Mixer) ProcessComplex(in []IQSample, out []IQSample) {
	for n, s := range in {
		m.advance()
		var i64 = int64(s.I)*int64(m.phasor.i) - int64(s.Q)*int64(m.phasor.q)
		var q64 = int64(s.I)*int64(m.phasor.q) + int64(s.Q)*int64(m.phasor.i)
		out[n] = IQSample{
			I: clampAcc(i64 >> 31),
			Q: clampAcc(q64 >> 31),
		}
	}
}

// ProcessReal mixes in and writes only the real down-mix component.
func (m *Mixer) ProcessReal(in []IQSample, out []int32) {
	for n, s := range in {
		m.advance()
		var i64 = int64(s.I)*int64(m.phasor.i) - int64(s.Q)*int64(m.phasor.q)
		out[n] = clampAcc(i64 >> 31)
	}
}
