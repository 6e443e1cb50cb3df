package satradio

// PortAudioSource captures raw PCM from a live sound card input, used when
// a channel's `input` config names a capture device rather than a file
// path. This is not audio decoding: it is the same raw interleaved PCM
// that RawAudioSource reads from a file, just sourced from hardware.

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type PortAudioSource struct {
	stream     *portaudio.Stream
	buf        []int16
	stereo     bool
	sampleRate float64
	closed     bool
}

// NewPortAudioSource opens the named input device (empty string selects
// the system default) for capture at sampleRate.
func NewPortAudioSource(deviceName string, stereo bool, sampleRate float64) (*PortAudioSource, error) {
	if initErr := portaudio.Initialize(); initErr != nil {
		return nil, fmt.Errorf("initialising portaudio: %w", initErr)
	}

	var channels = 1
	if stereo {
		channels = 2
	}

	var dev *portaudio.DeviceInfo
	if deviceName != "" {
		var devices, listErr = portaudio.Devices()
		if listErr != nil {
			return nil, fmt.Errorf("listing audio devices: %w", listErr)
		}
		for _, d := range devices {
			if d.Name == deviceName {
				dev = d
				break
			}
		}
		if dev == nil {
			return nil, fmt.Errorf("audio capture device %q not found", deviceName)
		}
	}

	var src = &PortAudioSource{stereo: stereo, sampleRate: sampleRate, buf: make([]int16, 0)}

	var params portaudio.StreamParameters
	if dev != nil {
		params = portaudio.LowLatencyParameters(dev, nil)
		params.Input.Channels = channels
		params.SampleRate = sampleRate
	} else {
		params.Input.Channels = channels
		params.SampleRate = sampleRate
		params.FramesPerBuffer = portaudio.FramesPerBufferUnspecified
	}

	var stream, openErr = portaudio.OpenStream(params, &src.buf)
	if openErr != nil {
		return nil, fmt.Errorf("opening portaudio capture stream: %w", openErr)
	}
	src.stream = stream

	if startErr := stream.Start(); startErr != nil {
		return nil, fmt.Errorf("starting portaudio capture stream: %w", startErr)
	}

	return src, nil
}

func (p *PortAudioSource) Read(audioOut [2][]int16) (int, error) {
	if p.closed {
		return 0, ErrSourceClosed
	}

	var n = len(audioOut[0])
	var frameSamples = n
	if p.stereo {
		frameSamples = n * 2
	}
	if len(p.buf) < frameSamples {
		p.buf = make([]int16, frameSamples)
	}

	if err := p.stream.Read(); err != nil {
		return 0, fmt.Errorf("reading portaudio capture stream: %w", err)
	}

	for i := 0; i < n; i++ {
		if p.stereo {
			audioOut[0][i] = p.buf[i*2]
			audioOut[1][i] = p.buf[i*2+1]
		} else {
			audioOut[0][i] = p.buf[i]
			if audioOut[1] != nil {
				audioOut[1][i] = p.buf[i]
			}
		}
	}

	return n, nil
}

func (p *PortAudioSource) EOF() bool { return false } // Live capture never ends on its own.

func (p *PortAudioSource) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.stream != nil {
		p.stream.Stop()  //nolint:errcheck
		p.stream.Close() //nolint:errcheck
	}
	return portaudio.Terminate()
}
