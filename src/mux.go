package satradio

// Top-level multiplex loop: each block period, every channel mixes its
// sub-carrier into a shared sum buffer, the sum is FM-modulated onto the
// master complex baseband, and the result goes to the sink.
//
// A loop woken on a fixed cadence, one iteration per channel, shared
// state protected for the lifetime of the process and torn down on a
// single shutdown signal: wake, serve every channel, repeat until told
// to stop.

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Mux owns every channel, the master FM modulator and the configured
// sink for one running instance.
type Mux struct {
	cfg      *Config
	channels []*Channel
	master   *FMModulator
	sink     RadioSink
	amp      *AmpControl
	telem    *TelemetryLog

	blockLen int
	stop     atomic.Bool

	blockIndex int64
	// underruns and saturations fill the telemetry columns of the same
	// names; nothing increments them, so those columns are always 0.
	underruns   int
	saturations int
}

// NewMux builds every configured channel and opens the sink, amplifier
// control and telemetry log. On any failure, everything opened so far is
// closed before returning the error.
func NewMux(cfg *Config) (*Mux, error) {
	var m = &Mux{cfg: cfg}

	var masterRate = cfg.Output.SampleRate
	m.blockLen = masterRate * BLOCK_DURATION_MS / 1000

	var level = clampInt32(int64(cfg.Output.Level * int16Max))
	m.master = NewFMModulator(float64(masterRate), 0, cfg.Output.Deviation, level)

	for idx := 0; idx < MAX_CHANNELS; idx++ {
		var chCfg, ok = cfg.Channels[idx]
		if !ok {
			continue
		}
		var ch, err = NewChannel(idx, chCfg, masterRate)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.channels = append(m.channels, ch)
	}

	var sink, sinkErr = OpenSink(cfg.Output)
	if sinkErr != nil {
		m.Close()
		return nil, fmt.Errorf("opening sink: %w", sinkErr)
	}
	m.sink = sink

	var ampChip = ""
	if cfg.Output.Amp {
		ampChip = cfg.Output.AmpChip
	}
	var amp, ampErr = NewAmpControl(ampChip, cfg.Output.AmpOffset)
	if ampErr != nil {
		m.Close()
		return nil, fmt.Errorf("opening amplifier control: %w", ampErr)
	}
	m.amp = amp

	var telem, telemErr = NewTelemetryLog(cfg.Telemetry.Dir, cfg.Telemetry.Pattern)
	if telemErr != nil {
		m.Close()
		return nil, fmt.Errorf("opening telemetry log: %w", telemErr)
	}
	m.telem = telem

	return m, nil
}

// Stop requests the run loop exit after its current block. Safe to call
// from a signal handler.
func (m *Mux) Stop() { m.stop.Store(true) }

// Run drives the multiplex loop until Stop is called or every channel
// has gone inactive. Live sinks are paced to wall-clock block duration;
// file sinks run as fast as the host can compute.
func (m *Mux) Run() error {
	if ampErr := m.amp.Enable(true); ampErr != nil {
		return fmt.Errorf("enabling amplifier: %w", ampErr)
	}
	defer m.amp.Enable(false) //nolint:errcheck

	var sum = make([]int16, m.blockLen)
	var iq = make([]IQSample, m.blockLen)

	var period = time.Duration(BLOCK_DURATION_MS) * time.Millisecond
	var next = time.Now()

	for !m.stop.Load() {
		for i := range sum {
			sum[i] = 0
		}

		var active = 0
		for _, ch := range m.channels {
			if !ch.Active() {
				continue
			}
			active++
			ch.Modulate(sum, m.blockLen)
		}
		if active == 0 {
			logInfo("all channels exhausted, stopping")
			break
		}

		m.master.ProcessComplex(sum, iq)

		if scale := m.sink.Scale(); scale != 1.0 {
			for i := range iq {
				iq[i].I = int32(float64(iq[i].I) * scale)
				iq[i].Q = int32(float64(iq[i].Q) * scale)
			}
		}

		if writeErr := m.sink.Write(iq); writeErr != nil {
			return fmt.Errorf("writing block %d: %w", m.blockIndex, writeErr)
		}

		if logErr := m.telem.WriteBlock(time.Now(), m.blockIndex, active, m.underruns, m.saturations); logErr != nil {
			logWarn("telemetry write failed", "error", logErr)
		}
		m.blockIndex++

		if m.sink.Live() {
			next = next.Add(period)
			if sleep := time.Until(next); sleep > 0 {
				time.Sleep(sleep)
			} else {
				next = time.Now()
			}
		}
	}

	return nil
}

// Close releases every resource the mux opened, continuing past the
// first error so every channel and the sink all get a chance to close.
func (m *Mux) Close() error {
	var firstErr error
	for _, ch := range m.channels {
		if err := ch.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.sink != nil {
		if err := m.sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.amp != nil {
		if err := m.amp.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.telem != nil {
		m.telem.Close()
	}
	return firstErr
}
