package satradio

// FM sub-carrier modulator.
//
// A fixed-point phase-accumulator technique generalised to a
// 65,536-entry complex phasor LUT driven directly by the modulating
// int16 sample, with rotate-by-complex-multiply and periodic
// renormalisation to bound the accumulated phase error.

import "math"

const fmRenormPeriod = int16Max

// fmPhasor is a unit complex number scaled to roughly INT32_MAX.
type fmPhasor struct {
	i int32
	q int32
}

// FMModulator holds a LUT of 65,536 complex unit phasors, one per
// possible int16 modulating sample, driving a running phasor by complex
// multiplication.
type FMModulator struct {
	lut    []fmPhasor
	phasor fmPhasor
	level  int32
	count  int
}

// NewFMModulator builds the angle LUT for carrier f0 with peak deviation
// deltaF at sample rate fs.
func NewFMModulator(fs float64, f0 float64, deltaF float64, level int32) *FMModulator {
	var m = &FMModulator{
		lut:    make([]fmPhasor, 65536),
		phasor: fmPhasor{i: int32Max - int16Max, q: 0},
		level:  level,
	}

	for r := 0; r < 65536; r++ {
		var sample = int16(r) // wraps through the full int16 range
		var rate = 2 * math.Pi / fs * (f0 + float64(sample)/int16Max*deltaF)
		m.lut[r] = fmPhasor{
			i: int32(math.Round(math.Cos(rate) * int32Max)),
			q: int32(math.Round(math.Sin(rate) * int32Max)),
		}
	}

	return m
}

// ProcessReal modulates in and writes the real (I) part only, scaled by
// level (`i*level>>15`), with one further >>16 to bring the Q31-scale
// phasor back into int16 range for the per-channel sub-carrier path (the
// master FM path keeps the full int32 width via ProcessComplex, feeding
// IQSample directly).
func (m *FMModulator) ProcessReal(in []int16, out []int16) {
	for n, s := range in {
		m.step(s)
		out[n] = int16((int64(m.phasor.i) * int64(m.level)) >> 15 >> 16)
	}
}

// ProcessComplex modulates in and writes both I and Q to out, scaled by
// level at full int32 width.
func (m *FMModulator) ProcessComplex(in []int16, out []IQSample) {
	for n, s := range in {
		m.step(s)
		out[n] = IQSample{
			I: int32((int64(m.phasor.i) * int64(m.level)) >> 15),
			Q: int32((int64(m.phasor.q) * int64(m.level)) >> 15),
		}
	}
}

func (m *FMModulator) step(s int16) {
	var d = m.lut[uint16(s)]

	const round = int64(0x3FFFFFFF)
	var i64 = int64(m.phasor.i)*int64(d.i) - int64(m.phasor.q)*int64(d.q)
	var q64 = int64(m.phasor.i)*int64(d.q) + int64(m.phasor.q)*int64(d.i)

	m.phasor.i = int32((i64 + round) >> 31)
	m.phasor.q = int32((q64 + round) >> 31)

	m.count++
	if m.count >= fmRenormPeriod {
		m.renormalise()
		m.count = 0
	}
}

// renormalise rewrites the phasor as a unit vector scaled to
// INT32_MAX-INT16_MAX, cancelling gain drift from fixed-point rounding.
func (m *FMModulator) renormalise() {
	var angle = math.Atan2(float64(m.phasor.q), float64(m.phasor.i))
	var scale = float64(int32Max - int16Max)
	m.phasor.i = int32(math.Round(math.Cos(angle) * scale))
	m.phasor.q = int32(math.Round(math.Sin(angle) * scale))
}

// PhasorEnergy reports |phasor|^2, exposed for the renormalisation
// invariant test.
func (m *FMModulator) PhasorEnergy() float64 {
	return float64(m.phasor.i)*float64(m.phasor.i) + float64(m.phasor.q)*float64(m.phasor.q)
}
