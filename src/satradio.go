// Package satradio implements the signal chain for a satellite radio
// multiplex transmitter: analog FM and ADR (Astra Digital Radio) digital
// sub-carriers are mixed onto one complex baseband composite and handed to
// a radio sink.
package satradio

// Maximum number of channels a single instance can multiplex.
// Matches the 4-bit channel field used throughout the configuration schema.
const MAX_CHANNELS = 16

// Master block duration. One call to the mux loop produces this much audio.
const BLOCK_DURATION_MS = 100

// Intermediate sample rates used by the two channel families before they
// are expanded to the master rate.
const (
	FM_CHANNEL_RATE  = 32000
	ADR_CHANNEL_RATE = 48000
)

// One MP2 frame always carries this many PCM samples per encoded channel.
const MP2_FRAME_SAMPLES = 1152

// Fixed sizes from the ADR frame layout.
const (
	MP2_FRAME_BYTES  = 576
	ADR_FRAME_BYTES  = 768 // post-FEC transport frame
	ANCILLARY_OFFSET = 0x21C
	ANCILLARY_BYTES  = 36
	ANCILLARY_RAW    = 18
)

// Default master FM parameters.
const (
	DEFAULT_MASTER_DEVIATION = 16_000_000.0
	DEFAULT_MASTER_LEVEL     = 1.0
)
