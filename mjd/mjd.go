// Package mjd converts between calendar time and the Modified Julian Day
// axis FVCOM forcing files use: days since 1858-11-17T00:00:00 UTC.
package mjd

import "time"

var epoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

// FromTime returns t as fractional days since the MJD epoch.
func FromTime(t time.Time) float64 {
	return t.Sub(epoch).Seconds() / 86400.0
}

// ToTime returns the calendar time for fractional MJD day d.
func ToTime(d float64) time.Time {
	return epoch.Add(time.Duration(d * 86400.0 * float64(time.Second)))
}

// Split breaks t into the integer day / millisecond-of-day pair stored as
// Itime and Itime2 in FVCOM NetCDF forcing files.
func Split(t time.Time) (itime, itime2 int32) {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	itime = int32(midnight.Sub(epoch).Hours() / 24)
	itime2 = int32(u.Sub(midnight).Milliseconds())
	return itime, itime2
}
