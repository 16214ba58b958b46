package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Prediction is a parsed OTPS predict_tide output: one elevation time
// series per requested site. Elev is Ntime x Nsite, Elev.At(t, n) being
// the elevation in meters at site n and time t. Site order follows first
// occurrence in the file, which matches the order of the lat_lon input.
type Prediction struct {
	Lats, Lons []float64
	Times      []time.Time
	Elev       *mat.Dense
}

// WriteLatLon writes an OTPS lat_lon site file: one "lat lon" pair per
// line, in degrees.
func WriteLatLon(w io.Writer, lats, lons []float64) error {
	if len(lats) != len(lons) {
		return fmt.Errorf("have %d lats for %d lons", len(lats), len(lons))
	}
	for i := range lats {
		if _, err := fmt.Fprintf(w, "%10.6f %11.6f\n", lats[i], lons[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTimes writes an OTPS time file: one "yyyy mm dd hh mm ss" stamp
// per line, UTC.
func WriteTimes(w io.Writer, times []time.Time) error {
	for _, t := range times {
		u := t.UTC()
		_, err := fmt.Fprintf(w, "%4d %2d %2d %2d %2d %2d\n",
			u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
		if err != nil {
			return err
		}
	}
	return nil
}

// TimeRange expands a start/end window with a fixed interval into the
// stamp sequence fed to both WriteTimes and the forcing NetCDF. End is
// inclusive when it lands exactly on a step.
func TimeRange(start, end time.Time, interval time.Duration) ([]time.Time, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval %v must be positive", interval)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end %v before start %v", end, start)
	}
	var times []time.Time
	for t := start; !t.After(end); t = t.Add(interval) {
		times = append(times, t)
	}
	return times, nil
}

// ReadPrediction parses predict_tide output. The file carries a free-form
// header followed by data rows of the shape
//
//	lat lon mm.dd.yyyy hh:mm:ss z [depth ...]
//
// grouped by site, each site listing the same time sequence. Rows that do
// not parse as data (header, out-of-grid remarks) are skipped.
func ReadPrediction(r io.Reader) (*Prediction, error) {
	sc := bufio.NewScanner(r)
	p := &Prediction{}
	var (
		series  [][]float64
		curLat  float64
		curLon  float64
		haveCur bool
	)
	for sc.Scan() {
		lat, lon, ts, z, ok := parsePredictionRow(sc.Text())
		if !ok {
			continue
		}
		if !haveCur || lat != curLat || lon != curLon {
			curLat, curLon, haveCur = lat, lon, true
			p.Lats = append(p.Lats, lat)
			p.Lons = append(p.Lons, lon)
			series = append(series, nil)
		}
		n := len(series) - 1
		series[n] = append(series[n], z)
		if n == 0 {
			p.Times = append(p.Times, ts)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no prediction rows found")
	}
	nt := len(p.Times)
	for n, s := range series {
		if len(s) != nt {
			return nil, fmt.Errorf("site %d has %d samples, site 1 has %d", n+1, len(s), nt)
		}
	}
	p.Elev = mat.NewDense(nt, len(series), nil)
	for n, s := range series {
		for t, z := range s {
			p.Elev.Set(t, n, z)
		}
	}
	return p, nil
}

func parsePredictionRow(line string) (lat, lon float64, ts time.Time, z float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return 0, 0, time.Time{}, 0, false
	}
	var err error
	if lat, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, time.Time{}, 0, false
	}
	if lon, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return 0, 0, time.Time{}, 0, false
	}
	if ts, err = time.Parse("01.02.2006 15:04:05", fields[2]+" "+fields[3]); err != nil {
		return 0, 0, time.Time{}, 0, false
	}
	if z, err = strconv.ParseFloat(fields[4], 64); err != nil {
		return 0, 0, time.Time{}, 0, false
	}
	return lat, lon, ts, z, true
}
