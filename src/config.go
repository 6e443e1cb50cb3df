package satradio

// Configuration loading.
//
// Dire Wolf's config.go hand-rolls a line-oriented INI-style parser because
// that file format, and parsing it, is the whole point of that function.
// Here configuration file parsing is explicitly a named non-goal (the
// schema is an external collaborator boundary, not something this package
// needs to own) - so rather than hand-rolling a second parser, this loads
// the same section/key schema through a real YAML decoder. Section and key
// names match the schema so a deployment can express the same information,
// just as a YAML document instead of an INI file.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type OutputType string

const (
	OutputFile      OutputType = "file"
	OutputHackRF    OutputType = "hackrf"
	OutputSoapySDR  OutputType = "soapysdr"
)

type DataType string

const (
	DataUint8  DataType = "uint8"
	DataInt8   DataType = "int8"
	DataUint16 DataType = "uint16"
	DataInt16  DataType = "int16"
	DataInt32  DataType = "int32"
	DataFloat  DataType = "float"
)

type ChannelMode string

const (
	ChannelModeFM     ChannelMode = "fm"
	ChannelModeDualFM ChannelMode = "dual-fm"
	ChannelModeADR    ChannelMode = "adr"
)

type SourceType string

const (
	SourceRawAudio  SourceType = "rawaudio"
	SourceTone      SourceType = "tone"
	SourceFFmpeg    SourceType = "ffmpeg"
	SourcePortAudio SourceType = "portaudio"
)

type Preemphasis string

const (
	PreemphasisNone  Preemphasis = "none"
	Preemphasis50us  Preemphasis = "50us"
	Preemphasis75us  Preemphasis = "75us"
	PreemphasisJ17   Preemphasis = "j17"
)

type ADRMode string

const (
	ADRModeMono   ADRMode = "mono"
	ADRModeDual   ADRMode = "dual"
	ADRModeJoint  ADRMode = "joint"
	ADRModeStereo ADRMode = "stereo"
)

// OutputConfig is the `[output]` section of the schema.
type OutputConfig struct {
	Type       OutputType `yaml:"type"`
	Output     string     `yaml:"output"`
	SampleRate int        `yaml:"sample_rate"`
	Frequency  float64    `yaml:"frequency"`
	Gain       float64    `yaml:"gain"`
	Amp        bool       `yaml:"amp"`
	Antenna    string     `yaml:"antenna"`
	Live       bool       `yaml:"live"`
	DataType   DataType   `yaml:"data_type"`
	Deviation  float64    `yaml:"deviation"`
	Level      float64    `yaml:"level"`
	AmpChip    string     `yaml:"amp_chip"`
	AmpOffset  int        `yaml:"amp_offset"`
}

// ChannelConfig is one `[channel N]` section of the schema.
type ChannelConfig struct {
	Mode         ChannelMode `yaml:"mode"`
	Type         SourceType  `yaml:"type"`
	Input        string      `yaml:"input"`
	Exec         bool        `yaml:"exec"`
	Stereo       bool        `yaml:"stereo"`
	Repeat       bool        `yaml:"repeat"`
	Preemphasis  Preemphasis `yaml:"preemphasis"`
	Frequency    float64     `yaml:"frequency"`
	Frequency1   float64     `yaml:"frequency1"`
	Frequency2   float64     `yaml:"frequency2"`
	Deviation    float64     `yaml:"deviation"`
	Level        float64     `yaml:"level"`
	ADRMode      ADRMode     `yaml:"adr_mode"`
	ScfCRC       bool        `yaml:"scfcrc"`
	Name         string      `yaml:"name"`
	ToneHz       float64     `yaml:"tone_hz"`
	ToneLevel    float64     `yaml:"tone_level"`
	Amp          bool        `yaml:"amp"`
}

// TelemetryConfig configures the optional per-block CSV telemetry log.
type TelemetryConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// Config is the root of the configuration file.
type Config struct {
	Output    OutputConfig             `yaml:"output"`
	Channels  map[int]ChannelConfig    `yaml:"channels"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`
}

// LoadConfig reads and validates a configuration file. Every problem found
// here is a configuration error: fatal at startup.
func LoadConfig(path string) (*Config, error) {
	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, readErr)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Output.Type {
	case OutputFile, OutputHackRF, OutputSoapySDR:
	default:
		return fmt.Errorf("[output] type: unrecognised value %q", c.Output.Type)
	}

	if c.Output.SampleRate <= 0 {
		return fmt.Errorf("[output] sample_rate: must be positive, got %d", c.Output.SampleRate)
	}

	if c.Output.Deviation == 0 {
		c.Output.Deviation = DEFAULT_MASTER_DEVIATION
	}
	if c.Output.Level == 0 {
		c.Output.Level = DEFAULT_MASTER_LEVEL
	}
	if c.Output.Amp && c.Output.AmpChip == "" {
		return fmt.Errorf("[output] amp: true requires amp_chip to be set")
	}

	switch c.Output.DataType {
	case "":
		c.Output.DataType = DataInt16
	case DataUint8, DataInt8, DataUint16, DataInt16, DataInt32, DataFloat:
	default:
		return fmt.Errorf("[output] data_type: unrecognised value %q", c.Output.DataType)
	}

	if len(c.Channels) == 0 {
		return fmt.Errorf("configuration declares no channels")
	}

	for n, ch := range c.Channels {
		if n < 0 || n >= MAX_CHANNELS {
			return fmt.Errorf("[channel %d]: channel index out of range 0..%d", n, MAX_CHANNELS-1)
		}

		switch ch.Mode {
		case ChannelModeFM, ChannelModeDualFM, ChannelModeADR:
		default:
			return fmt.Errorf("[channel %d] mode: unrecognised value %q", n, ch.Mode)
		}

		switch ch.Type {
		case SourceRawAudio, SourceTone, SourceFFmpeg, SourcePortAudio:
		default:
			return fmt.Errorf("[channel %d] type: unrecognised value %q", n, ch.Type)
		}

		if ch.Mode == ChannelModeADR {
			switch ch.ADRMode {
			case ADRModeMono, ADRModeDual, ADRModeJoint, ADRModeStereo:
			case "":
				ch.ADRMode = ADRModeJoint
				c.Channels[n] = ch
			default:
				return fmt.Errorf("[channel %d] adr_mode: unrecognised value %q", n, ch.ADRMode)
			}
		}

		switch ch.Preemphasis {
		case "", PreemphasisNone, Preemphasis50us, Preemphasis75us, PreemphasisJ17:
		default:
			return fmt.Errorf("[channel %d] preemphasis: unrecognised value %q", n, ch.Preemphasis)
		}

		if ch.Level == 0 {
			ch.Level = 1.0
			c.Channels[n] = ch
		}
	}

	return nil
}
