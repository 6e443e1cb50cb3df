package satradio

import "time"

func SLEEP_MS(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Because sometimes it's really convenient to have C's ternary ?:
func IfThenElse[T any](x bool, a T, b T) T { //nolint:ireturn
	if x {
		return a
	} else {
		return b
	}
}

// clampInt32 saturates v to the int32 range. Used when converting a
// configured float level to Q15 fixed point (channel and master levels).
func clampInt32(v int64) int32 {
	switch {
	case v > int64(int32Max):
		return int32Max
	case v < int64(int32Min):
		return int32Min
	default:
		return int32(v)
	}
}

// Untyped so they convert freely into the int16/int32/int64/float64
// contexts the FIR, limiter, FM and mixer fixed-point arithmetic needs.
const (
	int32Max = 1<<31 - 1
	int32Min = -1 << 31
	int16Max = 1<<15 - 1
)

// clampInt16 saturates v to the int16 range.
func clampInt16(v int32) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}
