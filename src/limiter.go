package satradio

// Pre-emphasis + look-ahead soft limiter.
//
// The fixed/variable dual-FIR split feeds each path through the same
// direct-form dot product PolyphaseFIR uses elsewhere; with interp=decim=1
// it degenerates to a plain FIR, which is exactly what this wants.

import "math"

// hannShape is the Hann-windowed attenuation profile spread across the
// limiter's look-ahead width: shape[j] = round((1-cos(2*pi*(j+1)/(W+1)))*0.5*INT16_MAX).
func hannShape(width int) []int32 {
	var shape = make([]int32, width)
	for j := 0; j < width; j++ {
		var v = (1 - math.Cos(2*math.Pi*float64(j+1)/float64(width+1))) * 0.5 * int16Max
		shape[j] = int32(math.Round(v))
	}
	return shape
}

// SoftLimiter is a dual-path (fixed/variable) pre-emphasis filter feeding
// a look-ahead soft limiter, one instance per FM sub-carrier channel.
type SoftLimiter struct {
	varFIR *PolyphaseFIR
	fixFIR *PolyphaseFIR
	level  int32
	width  int
	shape  []int32

	histVar []int32
	histFix []int32
	histAtt []int32
	write   int
	filled  int
}

// NewSoftLimiter builds a limiter with the given clip level and
// look-ahead width (forced odd; default 21). varTaps/fixTaps may be
// nil to pass their path through unfiltered.
func NewSoftLimiter(level int32, width int, varTaps []float64, fixTaps []float64) *SoftLimiter {
	if width%2 == 0 {
		width++
	}

	var l = &SoftLimiter{
		level:   level,
		width:   width,
		shape:   hannShape(width),
		histVar: make([]int32, width),
		histFix: make([]int32, width),
		histAtt: make([]int32, width),
	}
	if varTaps != nil {
		l.varFIR = NewPolyphaseFIR(varTaps, 1, 1)
	}
	if fixTaps != nil {
		l.fixFIR = NewPolyphaseFIR(fixTaps, 1, 1)
	}
	return l
}

func clampI32(v int32, level int32) int32 {
	if v > level {
		return level
	}
	if v < -level {
		return -level
	}
	return v
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Process runs n samples of in through the limiter, writing n samples to
// out. Each output is the oldest history slot, so out lags in by width-1
// samples; the peak check looks at the slot head = width/2 samples newer.
// Until the window fills, the fix/var history reads back zeros.
func (l *SoftLimiter) Process(in []int16, out []int16) {
	var head = l.width / 2

	for i := 0; i < len(in); i++ {
		var x = int32(in[i])

		var varRaw = x
		if l.varFIR != nil {
			var single [1]int32
			l.varFIR.Process([]int16{in[i]}, single[:], 1)
			varRaw = single[0]
		}

		var fixRaw = x
		if l.fixFIR != nil {
			var single [1]int32
			l.fixFIR.Process([]int16{in[i]}, single[:], 1)
			fixRaw = single[0]
		}

		var fixClipped = clampI32(fixRaw, l.level)
		var varVal = varRaw - fixClipped

		l.histVar[l.write] = varVal
		l.histFix[l.write] = fixClipped
		l.histAtt[l.write] = 0

		var tail = (l.write + 1) % l.width
		var headPos = (tail + head) % l.width
		var vh = l.histVar[headPos]
		var fh = l.histFix[headPos]

		if abs32(vh+fh) > l.level && vh != 0 {
			var margin = int64(l.level) + int64(abs32(vh)) - int64(abs32(vh+fh))
			var aExpr = int64(int16Max) - margin*int64(int16Max)/int64(abs32(vh))
			var a = int32Max64(aExpr)

			// Spread forward from tail, the position the main pointer
			// advances to this sample, matching the reference limiter's
			// post-increment attenuation sweep.
			for j := 0; j < l.width; j++ {
				var idx = (tail + j) % l.width
				var candidate = int32((int64(a) * int64(l.shape[j])) >> 15)
				if candidate > l.histAtt[idx] {
					l.histAtt[idx] = candidate
				}
			}
		}

		var outVar = l.histVar[tail]
		var outFix = l.histFix[tail]
		var outAtt = l.histAtt[tail]

		var v = int32(outFix) + int32((int64(outVar)*int64(int16Max-outAtt))>>15)
		out[i] = int16(clampI32(v, l.level))

		l.write = (l.write + 1) % l.width
		if l.filled < l.width {
			l.filled++
		}
	}
}

func int32Max64(v int64) int32 {
	if v > int32Max {
		return int32Max
	}
	if v < int32Min {
		return int32Min
	}
	return int32(v)
}
