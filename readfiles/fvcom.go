package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oceanmesh/fvprep/mesh"
)

// Casename derives the FVCOM case name from any of its input file paths,
// e.g. "runs/tst_grd.dat" -> "tst".
func Casename(path string) string {
	base := filepath.Base(path)
	for _, suffix := range []string{"_grd.dat", "_dep.dat", "_cor.dat", "_obc.dat", "_spg.dat", "_sigma.dat"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadFVCOMCase reads an FVCOM native input set. grdPath names the
// <casename>_grd.dat file; the sibling _dep.dat, _obc.dat and _spg.dat
// files are picked up from the same directory when present.
func ReadFVCOMCase(grdPath string) (*mesh.Mesh, error) {
	dir, cas := filepath.Dir(grdPath), Casename(grdPath)

	f, err := os.Open(grdPath)
	if err != nil {
		return nil, err
	}
	m, err := ReadGrd(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", grdPath, err)
	}

	if f, err = os.Open(filepath.Join(dir, cas+"_dep.dat")); err == nil {
		depth, derr := ReadDep(f)
		f.Close()
		if derr != nil {
			return nil, fmt.Errorf("%s_dep.dat: %v", cas, derr)
		}
		if len(depth) != m.Nv {
			return nil, fmt.Errorf("%s_dep.dat: %d depths for %d nodes", cas, len(depth), m.Nv)
		}
		m.Depth = depth
	}

	if f, err = os.Open(filepath.Join(dir, cas+"_obc.dat")); err == nil {
		segs, oerr := ReadObc(f)
		f.Close()
		if oerr != nil {
			return nil, fmt.Errorf("%s_obc.dat: %v", cas, oerr)
		}
		m.Open = segs
	}

	if f, err = os.Open(filepath.Join(dir, cas+"_spg.dat")); err == nil {
		nodes, sp, serr := ReadSpg(f)
		f.Close()
		if serr != nil {
			return nil, fmt.Errorf("%s_spg.dat: %v", cas, serr)
		}
		attachSponge(m, nodes, sp)
	}
	return m, nil
}

// ReadGrd parses a <casename>_grd.dat file: "Node Number = N" and
// "Cell Number = M" headers, M cell connectivity lines (id v1 v2 v3),
// then N node coordinate lines (id x y [h]).
func ReadGrd(r io.Reader) (*mesh.Mesh, error) {
	sc := bufio.NewScanner(r)
	nv, err := headerCount(sc, "Node Number")
	if err != nil {
		return nil, err
	}
	ne, err := headerCount(sc, "Cell Number")
	if err != nil {
		return nil, err
	}
	m := &mesh.Mesh{
		Nv:     nv,
		Ne:     ne,
		Coords: make([][2]float64, nv),
		Depth:  make([]float64, nv),
		Tris:   make([][3]int, ne),
	}
	for k := 0; k < ne; k++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading cell %d: %v", k+1, err)
		}
		f, err := leadingInts(line, 4)
		if err != nil {
			return nil, fmt.Errorf("cell line: %v", err)
		}
		if f[0] < 1 || f[0] > ne {
			return nil, fmt.Errorf("cell line %q: bad id", line)
		}
		m.Tris[f[0]-1] = [3]int{f[1], f[2], f[3]}
	}
	for i := 0; i < nv; i++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading node %d: %v", i+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("node line %q: need id x y", line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 1 || id > nv {
			return nil, fmt.Errorf("node line %q: bad id", line)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("node line %q: %v", line, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("node line %q: %v", line, err)
		}
		m.Coords[id-1] = [2]float64{x, y}
	}
	return m, nil
}

// ReadDep parses a <casename>_dep.dat file: "Node Number = N" header,
// then N lines of x y h. Node order follows the grid file.
func ReadDep(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	nv, err := headerCount(sc, "Node Number")
	if err != nil {
		return nil, err
	}
	depth := make([]float64, nv)
	for i := 0; i < nv; i++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading depth %d: %v", i+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("depth line %q: need x y h", line)
		}
		if depth[i], err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, fmt.Errorf("depth line %q: %v", line, err)
		}
	}
	return depth, nil
}

// ReadCor parses a <casename>_cor.dat file: "Node Number = N" header,
// then N lines of x y latitude, ordered like the grid file. ReadFVCOMCase
// does not consult this file, since a geographic grid carries the
// latitude in its y column already.
func ReadCor(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	nv, err := headerCount(sc, "Node Number")
	if err != nil {
		return nil, err
	}
	lats := make([]float64, nv)
	for i := 0; i < nv; i++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading coriolis node %d: %v", i+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("coriolis line %q: need x y latitude", line)
		}
		if lats[i], err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, fmt.Errorf("coriolis line %q: %v", line, err)
		}
	}
	return lats, nil
}

// ReadObc parses a <casename>_obc.dat file: "OBC Node Number = N" header,
// then N lines of counter, node id, type code. Each contiguous run of one
// type code becomes one segment.
func ReadObc(r io.Reader) ([]*mesh.Segment, error) {
	sc := bufio.NewScanner(r)
	n, err := headerCount(sc, "OBC Node Number")
	if err != nil {
		return nil, err
	}
	var (
		segs []*mesh.Segment
		cur  *mesh.Segment
	)
	for i := 0; i < n; i++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading obc node %d: %v", i+1, err)
		}
		f, err := leadingInts(line, 3)
		if err != nil {
			return nil, fmt.Errorf("obc line: %v", err)
		}
		node, typ := f[1], mesh.SegmentType(f[2])
		if cur == nil || cur.Type != typ {
			cur = &mesh.Segment{Type: typ}
			segs = append(segs, cur)
		}
		cur.Nodes = append(cur.Nodes, node)
	}
	return segs, nil
}

// ReadSpg parses a <casename>_spg.dat file: "Sponge Node Number = N"
// header, then N lines of node id, radius (m), damping coefficient.
func ReadSpg(r io.Reader) (nodes []int, sp *mesh.Sponge, err error) {
	sc := bufio.NewScanner(r)
	n, err := headerCount(sc, "Sponge Node Number")
	if err != nil {
		return nil, nil, err
	}
	nodes = make([]int, n)
	sp = &mesh.Sponge{
		Radius: make([]float64, n),
		Coeff:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		line, err := scanLine(sc)
		if err != nil {
			return nil, nil, fmt.Errorf("reading sponge node %d: %v", i+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, nil, fmt.Errorf("sponge line %q: need node radius coeff", line)
		}
		if nodes[i], err = strconv.Atoi(fields[0]); err != nil {
			return nil, nil, fmt.Errorf("sponge line %q: %v", line, err)
		}
		if sp.Radius[i], err = strconv.ParseFloat(fields[1], 64); err != nil {
			return nil, nil, fmt.Errorf("sponge line %q: %v", line, err)
		}
		if sp.Coeff[i], err = strconv.ParseFloat(fields[2], 64); err != nil {
			return nil, nil, fmt.Errorf("sponge line %q: %v", line, err)
		}
	}
	return nodes, sp, nil
}

// attachSponge distributes a flat sponge node list onto the open-boundary
// segments. A segment becomes a sponge segment only when every one of its
// nodes appears in the file; partial coverage leaves it untouched.
func attachSponge(m *mesh.Mesh, nodes []int, sp *mesh.Sponge) {
	radius := make(map[int]float64, len(nodes))
	coeff := make(map[int]float64, len(nodes))
	for i, v := range nodes {
		radius[v] = sp.Radius[i]
		coeff[v] = sp.Coeff[i]
	}
	for idx, seg := range m.Open {
		segSp := &mesh.Sponge{
			Radius: make([]float64, len(seg.Nodes)),
			Coeff:  make([]float64, len(seg.Nodes)),
		}
		covered := true
		for i, v := range seg.Nodes {
			r, ok := radius[v]
			if !ok {
				covered = false
				break
			}
			segSp.Radius[i] = r
			segSp.Coeff[i] = coeff[v]
		}
		if covered && len(seg.Nodes) > 0 {
			m.ApplySponge(idx, segSp)
		}
	}
}

// headerCount parses a "<label> = N" header line, tolerating extra
// whitespace around the equals sign.
func headerCount(sc *bufio.Scanner, label string) (int, error) {
	line, err := scanLine(sc)
	if err != nil {
		return 0, fmt.Errorf("reading %s header: %v", label, err)
	}
	if !strings.HasPrefix(line, label) {
		return 0, fmt.Errorf("expected %q header, got %q", label, line)
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return 0, fmt.Errorf("no count in header %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[ind+1:]))
	if err != nil {
		return 0, fmt.Errorf("header %q: %v", line, err)
	}
	return n, nil
}
