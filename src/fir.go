package satradio

// Integer polyphase rational-rate FIR filter.
//
// Generates float64 lowpass kernels with standard window
// functions, quantises the taps to Q15 fixed point and reorders them
// into polyphase banks so the same kernel can drive an arbitrary I/D
// rational resampler, the way the FM and QPSK
// sub-carrier paths need.

import "math"

type windowType int

const (
	windowHamming windowType = iota
	windowBlackman
	windowCosine
	windowFlattop
	windowTruncated
)

func windowShape(t windowType, size int, j int) float64 {
	var n = float64(size)
	var x = float64(j)
	var center = 0.5 * (n - 1)

	switch t {
	case windowCosine:
		return math.Cos((x - center) / n * math.Pi)
	case windowBlackman:
		return 0.42659 - 0.49656*math.Cos((x*2*math.Pi)/(n-1)) +
			0.076849*math.Cos((x*4*math.Pi)/(n-1))
	case windowFlattop:
		return 1.0 - 1.93*math.Cos((x*2*math.Pi)/(n-1)) +
			1.29*math.Cos((x*4*math.Pi)/(n-1)) -
			0.388*math.Cos((x*6*math.Pi)/(n-1)) +
			0.028*math.Cos((x*8*math.Pi)/(n-1))
	case windowTruncated:
		return 1.0
	case windowHamming:
		fallthrough
	default:
		return 0.53836 - 0.46164*math.Cos((x*2*math.Pi)/(n-1))
	}
}

// genLowpass builds a windowed-sinc lowpass kernel normalised to unity
// gain at DC. fc is the cutoff as a fraction of the sample rate.
func genLowpass(fc float64, size int, w windowType) []float64 {
	var taps = make([]float64, size)
	var center = 0.5 * float64(size-1)

	for j := 0; j < size; j++ {
		var sinc float64
		var d = float64(j) - center
		if d == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*d) / (math.Pi * d)
		}
		taps[j] = sinc * windowShape(w, size, j)
	}

	var g float64
	for _, t := range taps {
		g += t
	}
	for j := range taps {
		taps[j] /= g
	}
	return taps
}

// rrc is the root-raised-cosine pulse: sinc with cosine-windowed edges.
// t is time in symbol-duration units, a is the rolloff factor.
func rrc(t float64, a float64) float64 {
	var sinc float64
	if t > -0.001 && t < 0.001 {
		sinc = 1
	} else {
		sinc = math.Sin(math.Pi*t) / (math.Pi * t)
	}

	var win float64
	if math.Abs(a*t) > 0.499 && math.Abs(a*t) < 0.501 {
		win = math.Pi / 4
	} else {
		win = math.Cos(math.Pi*a*t) / (1 - math.Pow(2*a*t, 2))
	}

	return sinc * win
}

// quantiseTaps rounds float taps to Q15 fixed point and reorders them
// into I polyphase banks, each bank a contiguous run of ceil(ntaps/I)
// entries, matching the layout the resampler's dot product expects.
func quantiseTaps(taps []float64, interp int) ([]int32, int) {
	var bankLen = (len(taps) + interp - 1) / interp
	var total = bankLen * interp
	var q = make([]int32, total)

	for phase := 0; phase < interp; phase++ {
		for k := 0; k < bankLen; k++ {
			var srcIdx = k*interp + phase
			var v float64
			if srcIdx < len(taps) {
				v = taps[srcIdx]
			}
			q[phase*bankLen+k] = int32(math.Round(v * 32767.0))
		}
	}
	return q, bankLen
}

// PolyphaseFIR implements an I/D rational-rate resampling FIR over Q15
// fixed-point input/output. Allocation happens once at construction;
// Process is allocation-free.
type PolyphaseFIR struct {
	interp  int
	decim   int
	bankLen int
	taps    []int32 // interp banks of bankLen entries each

	window []int32 // circular input history, length bankLen + duplicated tail
	head   int
	phase  int // d in [0, interp)
}

// NewPolyphaseFIR builds a resampler from floating-point taps already
// laid out as one contiguous kernel (not yet polyphase-split).
func NewPolyphaseFIR(taps []float64, interp int, decim int) *PolyphaseFIR {
	var q, bankLen = quantiseTaps(taps, interp)
	return &PolyphaseFIR{
		interp:  interp,
		decim:   decim,
		bankLen: bankLen,
		taps:    q,
		window:  make([]int32, bankLen*2),
	}
}

// Process consumes in (Q15 int16-range samples) and writes interpolated,
// decimated output at the given stride (2 for interleaved IQ placement),
// returning the number of samples written.
func (f *PolyphaseFIR) Process(in []int16, out []int32, stride int) int {
	var written = 0

	for _, s := range in {
		f.head = (f.head - 1 + f.bankLen) % f.bankLen
		f.window[f.head] = int32(s)
		f.window[f.head+f.bankLen] = int32(s)

		for f.phase < f.interp {
			var bank = f.taps[f.phase*f.bankLen : f.phase*f.bankLen+f.bankLen]
			var acc int64
			for k := 0; k < f.bankLen; k++ {
				acc += int64(bank[k]) * int64(f.window[f.head+k])
			}
			out[written*stride] = clampAcc(acc >> 15)
			written++
			f.phase += f.decim
		}
		f.phase -= f.interp
	}

	return written
}

func clampAcc(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
