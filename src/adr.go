package satradio

// ADR Framer: ties the MP2 encoder, ancillary builder, Hamming
// interleaver, V.35 scrambler and punctured convolutional encoder
// together into one per-frame pipeline, on a 2-frame rotating buffer
// when ScF-CRC delayed patching is enabled.

// insertADRAncillary builds the 18-byte raw ancillary record (bytes
// 0..14 zero, bytes 15..17 the next three carousel bytes with bit 7 of
// byte 17 carrying the scfcrc flag), Hamming-encodes its 36 nibbles
// (low nibble of each byte first) and writes the 252 resulting bits
// column-major into frame's ancillary region at ANCILLARY_OFFSET,
// skipping the 4-byte ScF-CRC gap.
func insertADRAncillary(frame []byte, carousel *Carousel, scfcrc bool) {
	var ad [ANCILLARY_RAW]byte
	var next3 = carousel.Next3()
	ad[15] = next3[0]
	ad[16] = next3[1]
	ad[17] = next3[2]
	if scfcrc {
		ad[17] |= 0x80
	}

	var codewords [36]byte
	for i, b := range ad {
		codewords[i*2] = hammingEncodeNibble(b & 0x0F)
		codewords[i*2+1] = hammingEncodeNibble(b >> 4)
	}

	for i := 0; i < 252; i++ {
		var row = i % 36
		var column = i / 36
		var bit = (codewords[row] >> uint(6-column)) & 1

		var targetByte = i >> 3
		if targetByte >= scfCRCGapOffsetInAncillary {
			targetByte += scfCRCGapLen
		}
		var targetBit = uint(7 - (i & 7))

		var frameIdx = ANCILLARY_OFFSET + targetByte
		if bit != 0 {
			frame[frameIdx] |= 1 << targetBit
		} else {
			frame[frameIdx] &^= 1 << targetBit
		}
	}
}

const (
	scfCRCGapOffsetInAncillary = 30
	scfCRCGapLen               = 4
	scfCRCGapOffset            = ANCILLARY_OFFSET + scfCRCGapOffsetInAncillary
)

// patchScfCRC computes a CRC over prevFrame's audio payload and writes
// it into currentFrame's reserved 4-byte ScF-CRC gap: the same bytes the
// ancillary interleaver in insertADRAncillary skips over, so the two
// never collide.
func patchScfCRC(prevFrame []byte, currentFrame []byte) {
	var crc = crc16CCITT(prevFrame[mp2HeaderBytes+mp2CRCBytes : mp2HeaderBytes+mp2CRCBytes+mp2DataBytes])
	currentFrame[scfCRCGapOffset] = byte(crc >> 8)
	currentFrame[scfCRCGapOffset+1] = byte(crc)
	currentFrame[scfCRCGapOffset+2] = 0
	currentFrame[scfCRCGapOffset+3] = 0
}

// ADRFramer drives one ADR channel's frame pipeline: MP2 encode,
// ancillary insert, optional one-frame ScF-CRC delay, scramble, FEC.
type ADRFramer struct {
	mp2       *MP2Encoder
	carousel  *Carousel
	scfcrc    bool
	scrambler ScramblerState
	fec       FECEncoder

	prevFrame []byte
	havePrev  bool
}

// NewADRFramer builds a framer for one ADR channel.
func NewADRFramer(mode MPEGChannelMode, stationID string, scfcrc bool) *ADRFramer {
	return &ADRFramer{
		mp2:      NewMP2Encoder(mode, scfcrc),
		carousel: NewCarousel(stationID, mode),
		scfcrc:   scfcrc,
	}
}

// Process encodes one 1152-PCM-sample block. ok is false during the
// one-frame ScF-CRC warm-up (scfcrc enabled, first call only); err is
// non-nil only on encoder underrun.
func (a *ADRFramer) Process(left []int16, right []int16) (transport []byte, ok bool, err error) {
	var frame, encErr = a.mp2.Encode(left, right)
	if encErr != nil {
		return nil, false, encErr
	}

	insertADRAncillary(frame, a.carousel, a.scfcrc)

	var released []byte
	if a.scfcrc {
		if a.havePrev {
			patchScfCRC(a.prevFrame, frame)
			released = a.prevFrame
		}
		a.prevFrame = frame
		a.havePrev = true
		if released == nil {
			return nil, false, nil
		}
	} else {
		released = frame
	}

	var scrambled = ScrambleBlock(&a.scrambler, released)
	var transportFrame = a.fec.Encode(scrambled)
	return transportFrame, true, nil
}
