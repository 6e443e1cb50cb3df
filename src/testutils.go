package satradio

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertOutputContains captures stdout during command and asserts it
// contains expectedOutputContains. Used for testing CLI-facing output
// such as PrintVersion.
func AssertOutputContains(t *testing.T, command func(), expectedOutputContains string) {
	t.Helper()

	var oldStdout = os.Stdout
	defer func() {
		os.Stdout = oldStdout
	}()

	var r, w, _ = os.Pipe()
	os.Stdout = w

	command()

	w.Close() //nolint:gosec

	os.Stdout = oldStdout

	var outputBytes, readErr = io.ReadAll(r)

	require.NoError(t, readErr)

	var outputString = string(outputBytes)

	assert.Contains(t, outputString, expectedOutputContains)
}
