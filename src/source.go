package satradio

// Audio source contract and the two concrete sources this module owns: a
// tone generator and a raw-PCM file/device reader. Actual media decoding
// (ffmpeg, compressed formats) stays out of scope; only its interface is
// defined here, with a stub that reports the collaborator is missing
// rather than attempting to decode anything.

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var (
	ErrSourceClosed  = errors.New("audio source closed")
	ErrNotImplemented = errors.New("external collaborator not implemented")
)

// AudioSource is the host-facing contract every channel audio source
// implements. Mono sources return the same slice for both channel outputs.
type AudioSource interface {
	// Read fills audioOut[0] (left/mono) and, for stereo sources,
	// audioOut[1] (right) with up to len(audioOut[0]) int16 samples each.
	// It returns the number of samples actually read.
	Read(audioOut [2][]int16) (samplesRead int, err error)

	// EOF reports whether the source has been exhausted.
	EOF() bool

	// Close is idempotent.
	Close() error
}

// ReadMono drains n samples from src into dst at the given stride,
// refilling src's internal chunk as needed.
func ReadMono(src AudioSource, dst []int16, stride int, n int) (int, error) {
	var written = 0
	for written < n {
		var buf [2][]int16
		buf[0] = make([]int16, n-written)
		var got, err = src.Read(buf)
		for i := 0; i < got; i++ {
			dst[(written+i)*stride] = buf[0][i]
		}
		written += got
		if err != nil {
			return written, err
		}
		if got == 0 {
			if src.EOF() {
				return written, io.EOF
			}
			return written, nil
		}
	}
	return written, nil
}

// ReadStereo drains n samples per channel from src into left/right at the
// given stride.
func ReadStereo(src AudioSource, left []int16, right []int16, stride int, n int) (int, error) {
	var written = 0
	for written < n {
		var buf [2][]int16
		buf[0] = make([]int16, n-written)
		buf[1] = make([]int16, n-written)
		var got, err = src.Read(buf)
		for i := 0; i < got; i++ {
			left[(written+i)*stride] = buf[0][i]
			right[(written+i)*stride] = buf[1][i]
		}
		written += got
		if err != nil {
			return written, err
		}
		if got == 0 {
			if src.EOF() {
				return written, io.EOF
			}
			return written, nil
		}
	}
	return written, nil
}

// ToneSource is a pure digital-synthesis audio source: it never decodes
// anything, it generates a sine wave at a configured frequency and
// level, producing PCM samples rather than driving a modulator directly.
type ToneSource struct {
	sampleRate float64
	freqHz     float64
	level      float64
	phase      float64
	closed     bool
}

func NewToneSource(sampleRate float64, freqHz float64, level float64) *ToneSource {
	return &ToneSource{sampleRate: sampleRate, freqHz: freqHz, level: level}
}

func (t *ToneSource) Read(audioOut [2][]int16) (int, error) {
	if t.closed {
		return 0, ErrSourceClosed
	}

	var n = len(audioOut[0])
	var step = 2 * math.Pi * t.freqHz / t.sampleRate

	for i := 0; i < n; i++ {
		var s = int16(t.level * 32767.0 * math.Sin(t.phase))
		audioOut[0][i] = s
		if audioOut[1] != nil {
			audioOut[1][i] = s
		}
		t.phase += step
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}

	return n, nil
}

func (t *ToneSource) EOF() bool { return false } // A tone generator never ends.

func (t *ToneSource) Close() error {
	t.closed = true
	return nil
}

// RawAudioSource reads little-endian signed 16-bit PCM samples from a file
// or pipe: mono (one sample per frame) or stereo (interleaved L/R).
type RawAudioSource struct {
	f      *os.File
	stereo bool
	repeat bool
	path   string
	eof    bool
	closed bool
}

func NewRawAudioSource(path string, stereo bool, repeat bool) (*RawAudioSource, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raw audio source %q: %w", path, err)
	}
	return &RawAudioSource{f: f, stereo: stereo, repeat: repeat, path: path}, nil
}

func (r *RawAudioSource) Read(audioOut [2][]int16) (int, error) {
	if r.closed {
		return 0, ErrSourceClosed
	}

	var n = len(audioOut[0])
	var frameBytes = 2
	if r.stereo {
		frameBytes = 4
	}

	var raw = make([]byte, n*frameBytes)
	var got, err = io.ReadFull(r.f, raw)

	var samplesRead = got / frameBytes
	for i := 0; i < samplesRead; i++ {
		if r.stereo {
			audioOut[0][i] = int16(binary.LittleEndian.Uint16(raw[i*4:]))
			audioOut[1][i] = int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		} else {
			var s = int16(binary.LittleEndian.Uint16(raw[i*2:]))
			audioOut[0][i] = s
			if audioOut[1] != nil {
				audioOut[1][i] = s
			}
		}
	}

	if err != nil && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
		if r.repeat {
			if _, seekErr := r.f.Seek(0, io.SeekStart); seekErr != nil {
				return samplesRead, fmt.Errorf("rewinding raw audio source %q: %w", r.path, seekErr)
			}
			return samplesRead, nil
		}
		r.eof = true
		return samplesRead, nil
	}

	return samplesRead, err
}

func (r *RawAudioSource) EOF() bool { return r.eof }

func (r *RawAudioSource) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}

// FFmpegSource is the external-media-decoder collaborator. Only its
// interface is owned by this module; actual decoding is deliberately out
// of scope.
type FFmpegSource struct{}

func NewFFmpegSource(_ string) (*FFmpegSource, error) {
	return nil, fmt.Errorf("ffmpeg source: %w", ErrNotImplemented)
}

func (f *FFmpegSource) Read(_ [2][]int16) (int, error) { return 0, ErrNotImplemented }
func (f *FFmpegSource) EOF() bool                       { return true }
func (f *FFmpegSource) Close() error                    { return nil }
