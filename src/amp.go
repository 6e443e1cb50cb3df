package satradio

// Amplifier enable control.
//
// This system free-runs continuously once started, so there's no
// push-to-talk concept; the `amp` config flag instead names a
// downstream RF power amplifier that should only be live while the mux
// loop is running. AmpControl opens the line once at startup and
// releases it exactly once at shutdown, holding it for the process
// lifetime.

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// AmpControl drives a single GPIO line used to enable a power amplifier.
type AmpControl struct {
	line *gpiocdev.Line
}

// NewAmpControl opens chip/offset as an output line, initially de-asserted.
// An empty chip disables amplifier control entirely (AmpControl is then a
// harmless no-op, matching channels/outputs that have no `amp` line wired).
func NewAmpControl(chip string, offset int) (*AmpControl, error) {
	if chip == "" {
		return &AmpControl{}, nil
	}

	var line, err = gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("opening amp control line %s:%d: %w", chip, offset, err)
	}

	return &AmpControl{line: line}, nil
}

// Enable asserts or de-asserts the amplifier enable line.
func (a *AmpControl) Enable(on bool) error {
	if a == nil || a.line == nil {
		return nil
	}

	var v = 0
	if on {
		v = 1
	}

	if err := a.line.SetValue(v); err != nil {
		return fmt.Errorf("setting amp control line: %w", err)
	}
	return nil
}

// Close releases the GPIO line, de-asserting it first. Idempotent.
func (a *AmpControl) Close() error {
	if a == nil || a.line == nil {
		return nil
	}

	a.line.SetValue(0) //nolint:errcheck
	var err = a.line.Close()
	a.line = nil
	return err
}
