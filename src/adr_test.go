package satradio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMP2EncodeFrameSize(t *testing.T) {
	var enc = NewMP2Encoder(MPEGModeJointStereo, false)
	var left = make([]int16, MP2_FRAME_SAMPLES)
	var right = make([]int16, MP2_FRAME_SAMPLES)

	var frame, err = enc.Encode(left, right)
	require.NoError(t, err)
	assert.Len(t, frame, MP2_FRAME_BYTES)
}

func TestMP2EncodeUnderrun(t *testing.T) {
	var enc = NewMP2Encoder(MPEGModeMono, false)
	var _, err = enc.Encode(make([]int16, 10), nil)
	assert.ErrorIs(t, err, ErrEncoderUnderrun)
}

func TestInsertADRAncillaryInterleavePlacement(t *testing.T) {
	// Bit i=0 should land on ancillary byte 0x21C bit 7;
	// bit i=240 (row 24, column 6) skips the ScF-CRC gap, landing on
	// byte 0x21C+34.
	var frame = make([]byte, MP2_FRAME_BYTES)
	var carousel = NewCarousel("TEST", MPEGModeJointStereo)
	insertADRAncillary(frame, carousel, false)

	// Bit 0 comes from codeword[0]'s top bit (column 0): the Hamming
	// codeword for ad[0]'s low nibble (ad[0]=0 => codeword 0x00), so bit 7
	// of byte ANCILLARY_OFFSET is 0 for this carousel's first frame; the
	// placement itself (not the value) is what this test pins.
	var codewordForAd0Lo = hammingEncodeNibble(0)
	var expectBit0 = (codewordForAd0Lo >> 6) & 1
	var gotBit0 = (frame[ANCILLARY_OFFSET] >> 7) & 1
	assert.Equal(t, expectBit0, gotBit0)
}

func TestADRFramerProducesTransportFrame(t *testing.T) {
	var framer = NewADRFramer(MPEGModeJointStereo, "TESTFM", false)
	var left = make([]int16, MP2_FRAME_SAMPLES)
	var right = make([]int16, MP2_FRAME_SAMPLES)

	var transport, ok, err = framer.Process(left, right)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, transport, ADR_FRAME_BYTES)
}

func TestADRFramerScfCRCWarmup(t *testing.T) {
	// Frame output is delayed by one frame when ScF-CRC is on.
	var framer = NewADRFramer(MPEGModeJointStereo, "TESTFM", true)
	var left = make([]int16, MP2_FRAME_SAMPLES)
	var right = make([]int16, MP2_FRAME_SAMPLES)

	var _, ok1, err1 = framer.Process(left, right)
	require.NoError(t, err1)
	assert.False(t, ok1, "first frame should warm up, not emit")

	var transport2, ok2, err2 = framer.Process(left, right)
	require.NoError(t, err2)
	require.True(t, ok2)
	assert.Len(t, transport2, ADR_FRAME_BYTES)
}

func TestADRFramerRepeatedFramesAllProduceTransportSize(t *testing.T) {
	var framer = NewADRFramer(MPEGModeMono, "LOOPFM", false)
	var left = make([]int16, MP2_FRAME_SAMPLES)

	for i := 0; i < 10; i++ {
		var transport, ok, err = framer.Process(left, nil)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, transport, ADR_FRAME_BYTES)
	}
}
