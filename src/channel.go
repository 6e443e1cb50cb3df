package satradio

// Channel Engine: per-channel state machine choosing mono-FM, dual-FM or
// ADR path. FM paths reach the master rate by sample-and-hold upsampling;
// the ADR path's QPSK polyphase resampler emits master-rate output directly.
//
// One frame/bit production loop per audio device, allocate-once-at-init,
// generalised from single-carrier production to the FM/dual-FM/ADR split
// this module supports.

import (
	"errors"
	"fmt"
	"io"
)

func adrModeToMPEG(m ADRMode) MPEGChannelMode {
	switch m {
	case ADRModeMono:
		return MPEGModeMono
	case ADRModeDual:
		return MPEGModeDualChannel
	case ADRModeStereo:
		return MPEGModeStereo
	case ADRModeJoint:
		fallthrough
	default:
		return MPEGModeJointStereo
	}
}

// preemphasisTaps selects the variable-path FIR curve for a channel's
// configured pre-emphasis. PreemphasisNone resolves to the flat curve,
// not to no filtering: the fixed path always runs the flat curve, so a
// "none" channel still needs the variable path to match it exactly.
func preemphasisTaps(p Preemphasis) []float64 {
	switch p {
	case Preemphasis50us:
		return preemph50usTaps
	case Preemphasis75us:
		return preemph75usTaps
	case PreemphasisJ17:
		return preemphJ17Taps
	case PreemphasisNone:
		fallthrough
	default:
		return preemphFlatTaps
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Channel holds one configured sub-carrier's audio source, intermediate
// sample rate and modulator state, for the channel lifetime.
type Channel struct {
	index      int
	cfg        ChannelConfig
	source     AudioSource
	masterRate int

	active bool
	rate   float64 // intermediate channel rate: 32kHz FM, 48kHz ADR

	// FM / dual-FM path.
	limiterL *SoftLimiter
	limiterR *SoftLimiter
	fmL      *FMModulator
	fmR      *FMModulator

	// ADR path.
	framer *ADRFramer
	qpsk   *QPSKModulator
	mixer  *Mixer

	// Scratch holds samples awaiting the master-rate stream: channel-rate
	// left/right PCM for FM paths (sample-and-hold upsampled), and shaped,
	// mixed complex baseband already at the master rate for ADR.
	scratchL []int16
	scratchR []int16
	adrIQ    []IQSample
	pos      int // next unconsumed index into scratch*/adrIQ
	interp   int // accumulated fractional-rate remainder driving the sample-and-hold upsample
}

// NewChannel constructs a channel from configuration; the audio source
// is attached immediately and the channel starts active.
func NewChannel(index int, cfg ChannelConfig, masterRate int) (*Channel, error) {
	var c = &Channel{index: index, cfg: cfg, masterRate: masterRate}

	var src, err = openSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("channel %d: opening source: %w", index, err)
	}
	c.source = src
	c.active = true

	switch cfg.Mode {
	case ChannelModeFM, ChannelModeDualFM:
		c.rate = FM_CHANNEL_RATE
		var taps = preemphasisTaps(cfg.Preemphasis)
		var level = levelToInt32(cfg.Level)

		c.limiterL = NewSoftLimiter(level, 21, taps, preemphFlatTaps)
		c.fmL = NewFMModulator(float64(masterRate), cfg.Frequency1, cfg.Deviation, level)

		if cfg.Mode == ChannelModeDualFM {
			c.limiterR = NewSoftLimiter(level, 21, taps, preemphFlatTaps)
			c.fmR = NewFMModulator(float64(masterRate), cfg.Frequency2, cfg.Deviation, level)
		}

	case ChannelModeADR:
		c.rate = ADR_CHANNEL_RATE
		c.framer = NewADRFramer(adrModeToMPEG(cfg.ADRMode), cfg.Name, cfg.ScfCRC)

		const symbolsPerFrame = ADR_FRAME_BYTES * 4 // 3072 QPSK symbols per 768-byte transport frame
		const framePeriodSamples = MP2_FRAME_SAMPLES // one frame per 1152 input PCM samples at 48kHz
		var symbolRate = int(ADR_CHANNEL_RATE) * symbolsPerFrame / framePeriodSamples
		var g = gcd(masterRate, symbolRate)
		c.qpsk = NewQPSKModulator(masterRate/g, symbolRate/g)
		c.mixer = NewMixer(float64(masterRate), cfg.Frequency)
	}

	return c, nil
}

func levelToInt32(level float64) int32 {
	if level == 0 {
		level = 1.0
	}
	return clampInt32(int64(level * int16Max))
}

func channelRate(cfg ChannelConfig) float64 {
	if cfg.Mode == ChannelModeADR {
		return ADR_CHANNEL_RATE
	}
	return FM_CHANNEL_RATE
}

func openSource(cfg ChannelConfig) (AudioSource, error) {
	switch cfg.Type {
	case SourceTone:
		var level = cfg.ToneLevel
		if level == 0 {
			level = 1.0
		}
		return NewToneSource(channelRate(cfg), cfg.ToneHz, level), nil
	case SourceRawAudio:
		return NewRawAudioSource(cfg.Input, cfg.Stereo, cfg.Repeat)
	case SourceFFmpeg:
		return NewFFmpegSource(cfg.Input)
	case SourcePortAudio:
		return NewPortAudioSource(cfg.Input, cfg.Stereo, channelRate(cfg))
	default:
		return nil, fmt.Errorf("unrecognised source type %q", cfg.Type)
	}
}

// Active reports whether the channel still has audio to contribute.
func (c *Channel) Active() bool { return c.active }

// Modulate produces bl master-rate samples of sub-carrier signal and
// adds them into sum by saturating addition.
func (c *Channel) Modulate(sum []int16, bl int) {
	switch c.cfg.Mode {
	case ChannelModeFM, ChannelModeDualFM:
		c.modulateFM(sum, bl)
	case ChannelModeADR:
		c.modulateADR(sum, bl)
	}
}

// refillFM reads and shapes one 1152-sample frame of channel audio.
func (c *Channel) refillFM() bool {
	const frameSamples = MP2_FRAME_SAMPLES
	var left = make([]int16, frameSamples)
	var right = make([]int16, frameSamples)

	var n, err = c.readFrame(left, right, frameSamples)
	if n == 0 && !c.active {
		return false
	}

	var shapedL = make([]int16, frameSamples)
	c.limiterL.Process(left, shapedL)
	c.scratchL = shapedL

	if c.cfg.Mode == ChannelModeDualFM {
		var shapedR = make([]int16, frameSamples)
		c.limiterR.Process(right, shapedR)
		c.scratchR = shapedR
	}

	c.pos = 0
	_ = err
	return true
}

// readFrame fills left/right with up to n samples of channel audio,
// looping on EOF when repeat is set and marking the channel inactive
// otherwise. Mono sources duplicate their single stream into both.
func (c *Channel) readFrame(left []int16, right []int16, n int) (int, error) {
	var got int
	var err error
	if c.cfg.Stereo {
		got, err = ReadStereo(c.source, left, right, 1, n)
	} else {
		got, err = ReadMono(c.source, left, 1, n)
		copy(right, left)
	}

	if got < n && errors.Is(err, io.EOF) {
		if c.cfg.Repeat {
			c.source.Close() //nolint:errcheck
			if src, reopenErr := openSource(c.cfg); reopenErr == nil {
				c.source = src
			}
		} else {
			c.active = false
		}
	}

	return got, err
}

// refillADR encodes and shapes one ADR transport frame. Returns false
// only on non-repeating source EOF; encoder underrun and the ScF-CRC
// warm-up period simply yield zero scratch samples for this call so the
// caller contributes silence and retries next block.
func (c *Channel) refillADR() bool {
	const frameSamples = MP2_FRAME_SAMPLES
	var left = make([]int16, frameSamples)
	var right = make([]int16, frameSamples)

	var n, _ = c.readFrame(left, right, frameSamples)
	if n == 0 && !c.active {
		return false
	}

	var transport, ok, encErr = c.framer.Process(left, right)
	if encErr != nil || !ok {
		c.adrIQ = nil
		c.pos = 0
		return true
	}

	var out = make([]IQSample, c.qpsk.OutputLen(len(transport))+4)
	var written = c.qpsk.ProcessFrame(transport, out)
	var mixed = make([]IQSample, written)
	c.mixer.ProcessComplex(out[:written], mixed)
	c.adrIQ = mixed
	c.pos = 0
	return true
}

func (c *Channel) modulateFM(sum []int16, bl int) {
	var upsampled = make([]int16, bl)
	var upsampledR []int16
	if c.cfg.Mode == ChannelModeDualFM {
		upsampledR = make([]int16, bl)
	}

	var produced = 0
	for produced < bl {
		if c.scratchL == nil || c.pos >= len(c.scratchL) {
			if !c.refillFM() {
				break
			}
		}

		var sL = c.scratchL[c.pos]
		var sR int16
		if upsampledR != nil {
			sR = c.scratchR[c.pos]
		}

		var advanced = false
		for c.interp < c.masterRate && produced < bl {
			upsampled[produced] = sL
			if upsampledR != nil {
				upsampledR[produced] = sR
			}
			produced++
			c.interp += int(c.rate)
			advanced = true
		}
		if c.interp >= c.masterRate {
			c.interp -= c.masterRate
			c.pos++
		} else if !advanced {
			break
		}
	}

	var fmOut = make([]int16, produced)
	c.fmL.ProcessReal(upsampled[:produced], fmOut)
	addSaturating(sum[:produced], fmOut)

	if upsampledR != nil {
		var fmOutR = make([]int16, produced)
		c.fmR.ProcessReal(upsampledR[:produced], fmOutR)
		addSaturating(sum[:produced], fmOutR)
	}
}

func (c *Channel) modulateADR(sum []int16, bl int) {
	var produced = 0
	for produced < bl {
		if c.adrIQ == nil || c.pos >= len(c.adrIQ) {
			if !c.refillADR() {
				break
			}
			if c.adrIQ == nil {
				break // underrun/warm-up this frame: contribute silence for the rest of the block
			}
		}

		// adrIQ is already at the master rate (the QPSK modulator's I/D
		// resampler did the rate change), so each sample fills one slot.
		var v = int32(sum[produced]) + c.adrIQ[c.pos].I
		sum[produced] = clampInt16(v)
		produced++
		c.pos++
	}
}

// addSaturating adds b into a in place, saturating to int16 range. The
// summing-stage overflow policy is left to the implementation; this
// module chooses saturating addition over wraparound (see DESIGN.md).
func addSaturating(a []int16, b []int16) {
	for i := range a {
		a[i] = clampInt16(int32(a[i]) + int32(b[i]))
	}
}

// Close releases the channel's audio source.
func (c *Channel) Close() error {
	if c.source != nil {
		return c.source.Close()
	}
	return nil
}
