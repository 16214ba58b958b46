package mjd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpoch(t *testing.T) {
	epoch := time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, FromTime(epoch))
	assert.True(t, ToTime(0).Equal(epoch))
}

func TestKnownDates(t *testing.T) {
	// 2000-01-01T00:00Z is MJD 51544.
	y2k := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 51544.0, FromTime(y2k))

	noon := y2k.Add(12 * time.Hour)
	assert.Equal(t, 51544.5, FromTime(noon))
	assert.True(t, ToTime(51544.5).Equal(noon))
}

func TestSplit(t *testing.T) {
	ts := time.Date(2000, time.January, 1, 6, 30, 15, 0, time.UTC)
	itime, itime2 := Split(ts)
	assert.Equal(t, int32(51544), itime)
	assert.Equal(t, int32((6*3600+30*60+15)*1000), itime2)

	itime, itime2 = Split(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int32(51544), itime)
	assert.Equal(t, int32(0), itime2)
}
