package satradio

// Simplified MPEG-1 Layer II frame encoder.
//
// This is deliberately NOT a bit-exact ISO/IEC 11172-3 encoder: there is
// no polyphase analysis filterbank, no psychoacoustic model and no real
// scale-factor/bit-allocation search. What it preserves, and what the
// rest of the ADR pipeline actually depends on, is the frame's
// structural contract: a valid 4-byte header + 2-byte CRC, a
// fixed 576-byte frame size at 48 kHz/192 kbit/s, and the ancillary data
// region at byte offset 0x21C left untouched for insertADRAncillary
// to write into. Bit-exact DAB/DVB compliance is out of scope here, so a
// structurally-correct placeholder payload is used where a full encoder
// would be far more than this module needs.
//
// Built around a layered frame-construction approach: build header,
// build payload, hand off to the next stage.

import (
	"errors"
	"fmt"
)

// MPEGChannelMode mirrors the ISO 11172-3 header's channel mode field.
type MPEGChannelMode int

const (
	MPEGModeStereo MPEGChannelMode = iota
	MPEGModeJointStereo
	MPEGModeDualChannel
	MPEGModeMono
)

var ErrEncoderUnderrun = errors.New("mp2 encoder: underrun")

const (
	mp2HeaderBytes   = 4
	mp2CRCBytes      = 2
	mp2DataBytes     = MP2_FRAME_BYTES - mp2HeaderBytes - mp2CRCBytes - ANCILLARY_BYTES
	mp2SamplingIndex = 0b01 // 48 kHz
	mp2BitrateIndex  = 0b1010 // 192 kbit/s, layer II index table
)

// MP2Encoder produces structurally-valid, fixed-size MPEG-1 Layer II
// frames at 48 kHz / 192 kbit/s with DAB-mode ancillary bits reserved.
type MP2Encoder struct {
	mode   MPEGChannelMode
	scfcrc bool
}

func NewMP2Encoder(mode MPEGChannelMode, scfcrc bool) *MP2Encoder {
	return &MP2Encoder{mode: mode, scfcrc: scfcrc}
}

// Encode consumes exactly MP2_FRAME_SAMPLES (1152) PCM samples per
// channel (mono: left only; stereo: left and right) and returns one
// 576-byte frame with its ancillary data region left zeroed for the
// caller to fill. Returns ErrEncoderUnderrun if fewer samples were
// supplied than one frame needs.
func (e *MP2Encoder) Encode(left []int16, right []int16) ([]byte, error) {
	if len(left) < MP2_FRAME_SAMPLES {
		return nil, fmt.Errorf("mp2 encode left channel: %w", ErrEncoderUnderrun)
	}
	if e.mode != MPEGModeMono && len(right) < MP2_FRAME_SAMPLES {
		return nil, fmt.Errorf("mp2 encode right channel: %w", ErrEncoderUnderrun)
	}

	var frame = make([]byte, MP2_FRAME_BYTES)

	writeMP2Header(frame, e.mode)
	packPseudoSubbandData(frame[mp2HeaderBytes+mp2CRCBytes:mp2HeaderBytes+mp2CRCBytes+mp2DataBytes], left, right, e.mode)
	writeCRC16(frame)

	return frame, nil
}

func writeMP2Header(frame []byte, mode MPEGChannelMode) {
	// Sync word (11 bits) + MPEG-1 (ID=1) + Layer II (2 bits=10) + protection (0=CRC present).
	frame[0] = 0xFF
	frame[1] = 0xF8 | 0x02<<1 | 0x00 // 1111 1 (sync tail, ID=1) | layer bits 10 | protection bit (0 = CRC present)

	var modeBits byte
	switch mode {
	case MPEGModeStereo:
		modeBits = 0b00
	case MPEGModeJointStereo:
		modeBits = 0b01
	case MPEGModeDualChannel:
		modeBits = 0b10
	case MPEGModeMono:
		modeBits = 0b11
	}

	frame[2] = mp2BitrateIndex<<4 | mp2SamplingIndex<<2 // padding=0, private=0
	frame[3] = modeBits<<6                              // mode_extension=0, copyright=0, original=0, emphasis=00
}

// packPseudoSubbandData fills the payload region with a deterministic,
// non-ISO-compliant rendering of the PCM block: each output byte carries
// the top bits of a local energy average, enough to exercise the
// downstream scrambler/FEC chain with non-trivial data without claiming
// decoder compatibility.
func packPseudoSubbandData(dst []byte, left []int16, right []int16, mode MPEGChannelMode) {
	var samplesPerByte = MP2_FRAME_SAMPLES / len(dst)
	if samplesPerByte < 1 {
		samplesPerByte = 1
	}

	for i := range dst {
		var start = i * samplesPerByte
		var end = start + samplesPerByte
		if end > len(left) {
			end = len(left)
		}
		if start >= end {
			dst[i] = 0
			continue
		}

		var acc int32
		for j := start; j < end; j++ {
			var v = int32(left[j])
			if mode != MPEGModeMono && j < len(right) {
				v = (v + int32(right[j])) / 2
			}
			acc += v
		}
		var avg = acc / int32(end-start)
		dst[i] = byte(avg >> 8)
	}
}

func writeCRC16(frame []byte) {
	var crc = crc16CCITT(frame[mp2HeaderBytes+mp2CRCBytes:])
	frame[mp2HeaderBytes] = byte(crc >> 8)
	frame[mp2HeaderBytes+1] = byte(crc)
}

func crc16CCITT(data []byte) uint16 {
	var crc uint16 = 0xFFFF
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
