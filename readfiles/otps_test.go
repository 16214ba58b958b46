package readfiles

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var predictionFile = []byte(` Model:        tpxo9.v1
 Constituents: m2 s2 n2 k2 k1 o1 p1 q1
 Predict elevations (m)
   Lat       Lon        mm.dd.yyyy hh:mm:ss     z(m)   Depth(m)
  0.000000    0.000000   01.01.2020 00:00:00    0.283   100.0
  0.000000    0.000000   01.01.2020 01:00:00    0.301   100.0
  0.000000    0.000000   01.01.2020 02:00:00    0.312   100.0
  1.000000    1.000000   01.01.2020 00:00:00   -0.120    80.0
  1.000000    1.000000   01.01.2020 01:00:00   -0.100    80.0
  1.000000    1.000000   01.01.2020 02:00:00   -0.080    80.0
`)

func TestReadPrediction(t *testing.T) {
	p, err := ReadPrediction(bytes.NewReader(predictionFile))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1}, p.Lats)
	assert.Equal(t, []float64{0, 1}, p.Lons)
	require.Len(t, p.Times, 3)
	assert.True(t, p.Times[0].Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Times[2].Equal(time.Date(2020, 1, 1, 2, 0, 0, 0, time.UTC)))

	nt, ns := p.Elev.Dims()
	assert.Equal(t, 3, nt)
	assert.Equal(t, 2, ns)
	assert.Equal(t, 0.283, p.Elev.At(0, 0))
	assert.Equal(t, 0.312, p.Elev.At(2, 0))
	assert.Equal(t, -0.100, p.Elev.At(1, 1))
}

func TestReadPredictionRagged(t *testing.T) {
	// Second site missing a sample: reject rather than misalign.
	short := bytes.TrimSuffix(predictionFile, []byte("  1.000000    1.000000   01.01.2020 02:00:00   -0.080    80.0\n"))
	_, err := ReadPrediction(bytes.NewReader(short))
	assert.Error(t, err)
}

func TestReadPredictionEmpty(t *testing.T) {
	_, err := ReadPrediction(bytes.NewReader([]byte("header only\n")))
	assert.Error(t, err)
}

func TestWriteLatLon(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLatLon(&buf, []float64{0, 45.5}, []float64{-70.25, 10}))
	assert.Equal(t, "  0.000000  -70.250000\n 45.500000   10.000000\n", buf.String())

	assert.Error(t, WriteLatLon(&buf, []float64{1}, []float64{1, 2}))
}

func TestWriteTimes(t *testing.T) {
	var buf bytes.Buffer
	times := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC),
	}
	require.NoError(t, WriteTimes(&buf, times))
	assert.Equal(t, "2020  1  1  0  0  0\n2020  1  1  1  0  0\n", buf.String())
}

func TestTimeRange(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	times, err := TimeRange(start, end, time.Hour)
	require.NoError(t, err)
	require.Len(t, times, 4)
	assert.True(t, times[0].Equal(start))
	assert.True(t, times[3].Equal(end))

	_, err = TimeRange(end, start, time.Hour)
	assert.Error(t, err)
	_, err = TimeRange(start, end, 0)
	assert.Error(t, err)
}
