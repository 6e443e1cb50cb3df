package satradio

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneSourceNeverReportsEOF(t *testing.T) {
	var s = NewToneSource(48000, 1000, 1.0)
	defer s.Close() //nolint:errcheck
	assert.False(t, s.EOF())

	var out [2][]int16
	out[0] = make([]int16, 100)
	var n, err = s.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.False(t, s.EOF())
}

func TestToneSourceMonoDuplicatesIntoRightChannel(t *testing.T) {
	var s = NewToneSource(48000, 1000, 1.0)
	defer s.Close() //nolint:errcheck

	var out [2][]int16
	out[0] = make([]int16, 16)
	out[1] = make([]int16, 16)
	var _, err = s.Read(out)
	require.NoError(t, err)
	assert.Equal(t, out[0], out[1])
}

func TestToneSourceClosedReturnsError(t *testing.T) {
	var s = NewToneSource(48000, 1000, 1.0)
	require.NoError(t, s.Close())

	var out [2][]int16
	out[0] = make([]int16, 4)
	var _, err = s.Read(out)
	assert.ErrorIs(t, err, ErrSourceClosed)
}

func TestReadMonoAccumulatesAcrossMultipleSourceReads(t *testing.T) {
	var s = NewToneSource(48000, 1000, 1.0)
	defer s.Close() //nolint:errcheck

	var dst = make([]int16, 500)
	var n, err = ReadMono(s, dst, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, n)
}

func writeRawPCM(t *testing.T, samples []int16) string {
	t.Helper()
	var dir = t.TempDir()
	var path = filepath.Join(dir, "raw.pcm")
	var buf = make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestRawAudioSourceMonoRoundTrip(t *testing.T) {
	var want = []int16{100, -200, 300, -400}
	var path = writeRawPCM(t, want)

	var src, err = NewRawAudioSource(path, false, false)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	var out [2][]int16
	out[0] = make([]int16, len(want))
	var n, readErr = src.Read(out)
	assert.NoError(t, readErr)
	assert.Equal(t, len(want), n)
	assert.Equal(t, want, out[0])
}

func TestRawAudioSourceStereoDeinterleaves(t *testing.T) {
	var left = []int16{1, 2, 3}
	var right = []int16{-1, -2, -3}
	var interleaved = make([]int16, 0, 6)
	for i := range left {
		interleaved = append(interleaved, left[i], right[i])
	}
	var path = writeRawPCM(t, interleaved)

	var src, err = NewRawAudioSource(path, true, false)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	var out [2][]int16
	out[0] = make([]int16, 3)
	out[1] = make([]int16, 3)
	var _, readErr = src.Read(out)
	assert.NoError(t, readErr)
	assert.Equal(t, left, out[0])
	assert.Equal(t, right, out[1])
}

func TestRawAudioSourceEOFWithoutRepeat(t *testing.T) {
	var path = writeRawPCM(t, []int16{1, 2, 3})

	var src, err = NewRawAudioSource(path, false, false)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	var out [2][]int16
	out[0] = make([]int16, 10)
	var n, readErr = src.Read(out)
	assert.NoError(t, readErr)
	assert.Equal(t, 3, n)
	assert.True(t, src.EOF())
}

func TestRawAudioSourceRepeatRewindsOnEOF(t *testing.T) {
	var path = writeRawPCM(t, []int16{1, 2, 3})

	var src, err = NewRawAudioSource(path, false, true)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	var out [2][]int16
	out[0] = make([]int16, 10)
	var _, readErr = src.Read(out)
	assert.NoError(t, readErr)
	assert.False(t, src.EOF())

	// Having rewound, a second read should again produce the same prefix.
	var out2 [2][]int16
	out2[0] = make([]int16, 3)
	var n2, readErr2 = src.Read(out2)
	assert.NoError(t, readErr2)
	assert.Equal(t, 3, n2)
	assert.Equal(t, []int16{1, 2, 3}, out2[0])
}

func TestRawAudioSourceCloseIsIdempotent(t *testing.T) {
	var path = writeRawPCM(t, []int16{1})
	var src, err = NewRawAudioSource(path, false, false)
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	var out [2][]int16
	out[0] = make([]int16, 1)
	var _, readErr = src.Read(out)
	assert.ErrorIs(t, readErr, ErrSourceClosed)
}

func TestFFmpegSourceIsNotImplemented(t *testing.T) {
	var _, err = NewFFmpegSource("anything.mp3")
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestReadStereoPropagatesEOF(t *testing.T) {
	var path = writeRawPCM(t, []int16{1, 2})
	var src, err = NewRawAudioSource(path, true, false)
	require.NoError(t, err)
	defer src.Close() //nolint:errcheck

	var left = make([]int16, 10)
	var right = make([]int16, 10)
	var n, readErr = ReadStereo(src, left, right, 1, 10)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, readErr, io.EOF)
}
