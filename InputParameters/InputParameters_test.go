package InputParameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caseFile = []byte(`
Casename: "tst"
GridFile: "fort.14"
GridFormat: adcirc
InvertDepth: true
SpongeCoeff: 0.002
TideStart: "2020-01-01 00:00"
TideEnd: "2020-01-02 00:00"
TideIntervalMinutes: 30
`)

func TestParse(t *testing.T) {
	cp := &CaseParameters{}
	require.NoError(t, cp.Parse(caseFile))
	assert.Equal(t, "tst", cp.Casename)
	assert.Equal(t, "adcirc", cp.GridFormat)
	assert.True(t, cp.InvertDepth)
	assert.Equal(t, 0.002, cp.SpongeCoeff)
	// The YAML key differs from the field name, so it only resolves
	// through the struct tag.
	assert.Equal(t, 30, cp.TideInterval)
	// Defaults fill in what the file leaves out.
	assert.Equal(t, 21, cp.SigmaLevels)
	assert.Equal(t, ".", cp.OutputDir)
}

func TestParseDefaults(t *testing.T) {
	cp := &CaseParameters{}
	require.NoError(t, cp.Parse([]byte(`Casename: x`)))
	assert.Equal(t, 0.001, cp.SpongeCoeff)
	assert.Equal(t, 60, cp.TideInterval)

	cp = &CaseParameters{}
	assert.Error(t, cp.Parse([]byte(`GridFile: fort.14`)), "Casename is required")
}

func TestTideWindow(t *testing.T) {
	cp := &CaseParameters{}
	require.NoError(t, cp.Parse(caseFile))
	start, end, interval, err := cp.TideWindow()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30*time.Minute, interval)

	cp.TideStart = "not a time"
	_, _, _, err = cp.TideWindow()
	assert.Error(t, err)
}
