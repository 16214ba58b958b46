// Package readfiles holds the file codecs: ADCIRC fort.14 reading, FVCOM
// native input reading/writing, OTPS text I/O, and the NetCDF
// open-boundary forcing writer. Codecs translate between bytes and the
// mesh data model and do nothing else; all real computation lives in the
// mesh, geodesy and sponge packages.
package readfiles

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oceanmesh/fvprep/geodesy"
	"github.com/oceanmesh/fvprep/mesh"
)

// Format tags the source grid format of a mesh file. Conversion branches
// switch over this tag; there is no format sniffing from content.
type Format int

const (
	FormatADCIRC Format = iota
	FormatFVCOM
)

func (f Format) String() string {
	switch f {
	case FormatADCIRC:
		return "adcirc"
	case FormatFVCOM:
		return "fvcom"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps the config-file format names onto the tag.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "adcirc", "fort.14", "fort14":
		return FormatADCIRC, nil
	case "fvcom", "grd":
		return FormatFVCOM, nil
	}
	return 0, fmt.Errorf("unknown grid format %q", name)
}

// Options adjust how a source grid is normalized into the canonical
// model during reading.
type Options struct {
	// InvertDepth flips the sign of the per-vertex depth once, for
	// source grids that store free-surface elevation (positive up)
	// instead of bathymetric depth (positive down).
	InvertDepth bool

	// SourceProj, when non-empty, is a proj4 string describing the
	// projected coordinate system the grid was digitized in. The
	// coordinates are transformed to geographic lon/lat at read time.
	SourceProj string
}

// ReadMeshFile reads a grid file in the given source format and
// normalizes it into the canonical mesh model.
//
// For FormatFVCOM, path names the <casename>_grd.dat file; the sibling
// _dep.dat, _obc.dat and _spg.dat files are read when present.
func ReadMeshFile(path string, format Format, opts Options) (*mesh.Mesh, error) {
	var (
		m   *mesh.Mesh
		err error
	)
	switch format {
	case FormatADCIRC:
		m, err = ReadADCIRC(path)
	case FormatFVCOM:
		m, err = ReadFVCOMCase(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %v", format)
	}
	if err != nil {
		return nil, err
	}
	if err = normalize(m, opts); err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return m, nil
}

func normalize(m *mesh.Mesh, opts Options) error {
	if opts.InvertDepth {
		for i := range m.Depth {
			m.Depth[i] = -m.Depth[i]
		}
	}
	if opts.SourceProj != "" {
		t, err := geodesy.ToGeographic(opts.SourceProj)
		if err != nil {
			return err
		}
		for i := range m.Coords {
			lon, lat, err := t(m.Coords[i][0], m.Coords[i][1])
			if err != nil {
				return fmt.Errorf("projecting vertex %d: %v", i+1, err)
			}
			m.Coords[i][0], m.Coords[i][1] = lon, lat
		}
	}
	return nil
}

// scanLine returns the next non-empty line, trimmed.
func scanLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("unexpected EOF")
}

// leadingInt parses the first whitespace-separated field of line as an
// integer, ignoring any trailing commentary (ADCIRC files annotate count
// lines with "= NOPE" style remarks).
func leadingInt(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty line")
	}
	return strconv.Atoi(fields[0])
}

func leadingInts(line string, n int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d fields, got %d in %q", n, len(fields), line)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("field %d of %q: %v", i+1, line, err)
		}
		out[i] = v
	}
	return out, nil
}
