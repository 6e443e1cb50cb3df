package satradio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	var dir = t.TempDir()
	var path = filepath.Join(dir, "satradio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMinimalValid(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  0:
    mode: fm
    type: tone
    tone_hz: 1000
    frequency1: 9500
`)

	var cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DataInt16, cfg.Output.DataType, "data_type should default to int16")
	assert.Equal(t, float64(DEFAULT_MASTER_DEVIATION), cfg.Output.Deviation)
	assert.Equal(t, float64(DEFAULT_MASTER_LEVEL), cfg.Output.Level)
	assert.Equal(t, 1.0, cfg.Channels[0].Level, "channel level should default to unity")
}

func TestLoadConfigMissingFile(t *testing.T) {
	var _, err = LoadConfig("/nonexistent/satradio.yaml")
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownOutputType(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: bogus
  sample_rate: 192000
channels:
  0:
    mode: fm
    type: tone
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsZeroSampleRate(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
channels:
  0:
    mode: fm
    type: tone
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsAmpWithoutChip(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
  amp: true
channels:
  0:
    mode: fm
    type: tone
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRequiresAtLeastOneChannel(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels: {}
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsChannelIndexOutOfRange(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  99:
    mode: fm
    type: tone
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownChannelMode(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  0:
    mode: bogus
    type: tone
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigADRModeDefaultsToJoint(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  0:
    mode: adr
    type: tone
    name: TESTFM
`)
	var cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ADRModeJoint, cfg.Channels[0].ADRMode)
}

func TestLoadConfigRejectsUnknownADRMode(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  0:
    mode: adr
    type: tone
    adr_mode: bogus
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownPreemphasis(t *testing.T) {
	var path = writeTestConfig(t, `
output:
  type: file
  output: /tmp/out.iq
  sample_rate: 192000
channels:
  0:
    mode: fm
    type: tone
    preemphasis: bogus
`)
	var _, err = LoadConfig(path)
	assert.Error(t, err)
}
