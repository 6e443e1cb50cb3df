package satradio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkWritesInt16Interleaved(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "out.iq")

	var sink, err = NewFileSink(path, DataInt16, 1.0, false)
	require.NoError(t, err)

	require.NoError(t, sink.Write([]IQSample{{I: 1000 << 16, Q: -2000 << 16}}))
	require.NoError(t, sink.Close())

	var raw, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	require.Len(t, raw, 4)

	var i = int16(binary.LittleEndian.Uint16(raw[0:2]))
	var q = int16(binary.LittleEndian.Uint16(raw[2:4]))
	assert.Equal(t, int16(1000), i)
	assert.Equal(t, int16(-2000), q)
}

func TestFileSinkCloseIsIdempotent(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "out.iq")

	var sink, err = NewFileSink(path, DataInt16, 1.0, false)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
}

func TestFileSinkDefaultsScaleToUnity(t *testing.T) {
	var dir = t.TempDir()
	var sink, err = NewFileSink(filepath.Join(dir, "out.iq"), DataInt16, 0, false)
	require.NoError(t, err)
	defer sink.Close() //nolint:errcheck
	assert.Equal(t, 1.0, sink.Scale())
}

func TestFileSinkLiveFlag(t *testing.T) {
	var dir = t.TempDir()
	var sink, err = NewFileSink(filepath.Join(dir, "out.iq"), DataInt16, 1.0, true)
	require.NoError(t, err)
	defer sink.Close() //nolint:errcheck
	assert.True(t, sink.Live())
}

func TestSampleWidthPerDataType(t *testing.T) {
	assert.Equal(t, 1, sampleWidth(DataUint8))
	assert.Equal(t, 1, sampleWidth(DataInt8))
	assert.Equal(t, 2, sampleWidth(DataUint16))
	assert.Equal(t, 2, sampleWidth(DataInt16))
	assert.Equal(t, 4, sampleWidth(DataInt32))
	assert.Equal(t, 4, sampleWidth(DataFloat))
}

func TestAppendSampleUint8Offsets(t *testing.T) {
	var buf = appendSample(nil, 0, DataUint8)
	assert.Equal(t, byte(128), buf[0], "zero should map to the midpoint of an unsigned 8-bit range")
}

func TestAppendSampleFloatNormalised(t *testing.T) {
	var buf = appendSample(nil, int32Max, DataFloat)
	var bits = binary.LittleEndian.Uint32(buf)
	var f = math.Float32frombits(bits)
	assert.InDelta(t, 1.0, f, 0.001)
}

func TestAppendSampleInt32PassesThrough(t *testing.T) {
	var buf = appendSample(nil, 123456, DataInt32)
	assert.Equal(t, uint32(123456), binary.LittleEndian.Uint32(buf))
}

func TestOpenSinkRejectsUnknownType(t *testing.T) {
	var _, err = OpenSink(OutputConfig{Type: OutputType("bogus")})
	assert.Error(t, err)
}

func TestOpenSinkFileCreatesWritableFile(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "out.iq")
	var sink, err = OpenSink(OutputConfig{Type: OutputFile, Output: path, DataType: DataInt16})
	require.NoError(t, err)
	defer sink.Close() //nolint:errcheck

	require.NoError(t, sink.Write([]IQSample{{I: 1, Q: 1}}))
	var _, statErr = os.Stat(path)
	assert.NoError(t, statErr)
}
