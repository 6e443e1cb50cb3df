package satradio

// QPSK shaping filter and symbol modulator.
//
// The polyphase resampling core is the same circular-window/bank-dot-product
// shape as fir.go; this file adds the RRC*Hamming tap design and
// bit-to-symbol mapping, run over two parallel I/Q polyphase windows
// instead of one.

import "math"

// genQPSKTaps builds the RRC x Hamming shaping kernel: ntaps = 5*interp|1
// taps, t = (x-n)/interp, windowed by a Hamming taper over (x-n)/n.
func genQPSKTaps(interp int) []float64 {
	var ntaps = 5*interp | 1
	var n = float64(ntaps-1) / 2
	var taps = make([]float64, ntaps)

	for x := 0; x < ntaps; x++ {
		var t = (float64(x) - n) / float64(interp)
		var u = (float64(x) - n) / n
		var hammingWin = 0.54 + 0.46*math.Cos(math.Pi*u)
		taps[x] = rrc(t, 0.5) * (1.0 / math.Sqrt2) * hammingWin
	}
	return taps
}

// QPSKModulator shapes a 768-byte ADR transport frame (3072 QPSK symbols,
// bits read MSB-first) into a complex int16 baseband stream at interp/decim
// times the symbol rate.
type QPSKModulator struct {
	interp  int
	decim   int
	bankLen int
	taps    []int32

	windowI []int32
	windowQ []int32
	head    int
	phase   int
}

// NewQPSKModulator builds the shaping filter for a rational interp/decim
// rate change (callers pass the gcd-minimised I/D of master rate vs
// symbol rate).
func NewQPSKModulator(interp int, decim int) *QPSKModulator {
	var taps = genQPSKTaps(interp)
	var q, bankLen = quantiseTaps(taps, interp)

	return &QPSKModulator{
		interp:  interp,
		decim:   decim,
		bankLen: bankLen,
		taps:    q,
		windowI: make([]int32, bankLen*2),
		windowQ: make([]int32, bankLen*2),
	}
}

// ProcessFrame shapes one 768-byte transport frame into complex int16
// output, returning the number of samples written.
func (m *QPSKModulator) ProcessFrame(frame []byte, out []IQSample) int {
	var written = 0

	for byteIdx := 0; byteIdx < len(frame); byteIdx++ {
		var b = frame[byteIdx]
		for pair := 0; pair < 4; pair++ {
			var shift = uint(6 - pair*2)
			var bit1 = (b >> (shift + 1)) & 1
			var bit0 = (b >> shift) & 1

			var iVal int32 = -int16Max
			if bit1 != 0 {
				iVal = int16Max
			}
			var qVal int32 = -int16Max
			if bit0 != 0 {
				qVal = int16Max
			}

			m.head = (m.head - 1 + m.bankLen) % m.bankLen
			m.windowI[m.head] = iVal
			m.windowI[m.head+m.bankLen] = iVal
			m.windowQ[m.head] = qVal
			m.windowQ[m.head+m.bankLen] = qVal

			for m.phase < m.interp {
				var bank = m.taps[m.phase*m.bankLen : m.phase*m.bankLen+m.bankLen]
				var accI, accQ int64
				for k := 0; k < m.bankLen; k++ {
					accI += int64(bank[k]) * int64(m.windowI[m.head+k])
					accQ += int64(bank[k]) * int64(m.windowQ[m.head+k])
				}
				out[written] = IQSample{
					I: clampAcc(accI >> 15),
					Q: clampAcc(accQ >> 15),
				}
				written++
				m.phase += m.decim
			}
			m.phase -= m.interp
		}
	}

	return written
}

// OutputLen reports how many samples ProcessFrame will emit for a frame
// of byteLen bytes (3072 symbols worth of I/D-rate output).
func (m *QPSKModulator) OutputLen(byteLen int) int {
	var symbols = byteLen * 4
	return (symbols*m.interp + m.phase) / m.decim
}
