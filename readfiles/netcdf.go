package readfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ctessum/cdf"
	"gonum.org/v1/gonum/mat"

	"github.com/oceanmesh/fvprep/mjd"
)

// WriteOBCNetCDF writes the FVCOM tidal elevation forcing file
// <casename>_obc.nc into dir and returns its path. nodes are the
// open-boundary vertex IDs in forcing order; elev is Ntime x Nobc with
// elev.At(t, n) the elevation at node n and time t.
//
// Dimensions are the unlimited record dimension "time" and "nobc".
// Classic NetCDF requires the record dimension to lead a record
// variable's layout, so elevation is stored time-major over its
// nobc x time index space. The time axis is written three ways, as FVCOM
// expects: fractional Modified Julian Days ("time"), whole days
// ("Itime") and milliseconds of day ("Itime2").
func WriteOBCNetCDF(dir, casename string, nodes []int32, times []time.Time, elev *mat.Dense) (string, error) {
	nt, nobc := elev.Dims()
	if nt != len(times) {
		return "", fmt.Errorf("elevation has %d time rows for %d times", nt, len(times))
	}
	if nobc != len(nodes) {
		return "", fmt.Errorf("elevation has %d node columns for %d nodes", nobc, len(nodes))
	}

	h := cdf.NewHeader([]string{"time", "nobc"}, []int{0, nobc})
	h.AddAttribute("", "title", casename+" tidal elevation forcing")
	h.AddAttribute("", "type", "FVCOM TIME SERIES ELEVATION FORCING FILE")
	h.AddAttribute("", "history", "written by fvprep")

	h.AddVariable("obc_nodes", []string{"nobc"}, []int32{0})
	h.AddAttribute("obc_nodes", "long_name", "Open Boundary Node Number")
	h.AddVariable("iint", []string{"time"}, []int32{0})
	h.AddAttribute("iint", "long_name", "internal mode iteration number")
	h.AddVariable("time", []string{"time"}, []float32{0})
	h.AddAttribute("time", "long_name", "time")
	h.AddAttribute("time", "units", "days since 1858-11-17 00:00:00")
	h.AddAttribute("time", "time_zone", "UTC")
	h.AddVariable("Itime", []string{"time"}, []int32{0})
	h.AddAttribute("Itime", "units", "days since 1858-11-17 00:00:00")
	h.AddVariable("Itime2", []string{"time"}, []int32{0})
	h.AddAttribute("Itime2", "units", "msec since 00:00:00")
	h.AddVariable("elevation", []string{"time", "nobc"}, []float32{0})
	h.AddAttribute("elevation", "long_name", "Open Boundary Elevation")
	h.AddAttribute("elevation", "units", "meters")
	h.Define()
	for _, err := range h.Check() {
		return "", fmt.Errorf("defining obc netcdf header: %v", err)
	}

	path := filepath.Join(dir, casename+"_obc.nc")
	ff, err := os.Create(path)
	if err != nil {
		return "", err
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		ff.Close()
		return "", fmt.Errorf("creating %s: %v", path, err)
	}

	days := make([]float32, nt)
	itime := make([]int32, nt)
	itime2 := make([]int32, nt)
	iint := make([]int32, nt)
	for t, ts := range times {
		days[t] = float32(mjd.FromTime(ts))
		itime[t], itime2[t] = mjd.Split(ts)
		iint[t] = int32(t + 1)
	}
	z := make([]float32, nt*nobc)
	for t := 0; t < nt; t++ {
		for n := 0; n < nobc; n++ {
			z[t*nobc+n] = float32(elev.At(t, n))
		}
	}

	writes := []struct {
		name  string
		begin []int
		end   []int
		data  interface{}
	}{
		{"obc_nodes", []int{0}, []int{nobc}, nodes},
		{"iint", []int{0}, []int{nt}, iint},
		{"time", []int{0}, []int{nt}, days},
		{"Itime", []int{0}, []int{nt}, itime},
		{"Itime2", []int{0}, []int{nt}, itime2},
		{"elevation", []int{0, 0}, []int{nt, nobc}, z},
	}
	for _, v := range writes {
		w := f.Writer(v.name, v.begin, v.end)
		if _, err := w.Write(v.data); err != nil {
			ff.Close()
			return "", fmt.Errorf("writing %s to %s: %v", v.name, path, err)
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		ff.Close()
		return "", fmt.Errorf("finalizing %s: %v", path, err)
	}
	return path, ff.Close()
}
