package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/oceanmesh/fvprep/mesh"
)

// ReadADCIRC reads an ADCIRC fort.14 mesh file.
func ReadADCIRC(path string) (*mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ReadFort14(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return m, nil
}

// ReadFort14 parses the fort.14 format: a title line; an element/vertex
// count line; one line per vertex (id x y depth); one line per element
// (id 3 v1 v2 v3); then the open-boundary block (NOPE, NETA, per-segment
// node lists) and the land-boundary block (NBOU, NVEL, per-segment node
// lists with an IBTYPE code). Count lines carry trailing commentary which
// is ignored. Depth is kept as stored: positive down.
func ReadFort14(r io.Reader) (*mesh.Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	if _, err := scanLine(sc); err != nil { // title
		return nil, fmt.Errorf("reading title: %v", err)
	}
	line, err := scanLine(sc)
	if err != nil {
		return nil, fmt.Errorf("reading counts: %v", err)
	}
	counts, err := leadingInts(line, 2)
	if err != nil {
		return nil, fmt.Errorf("reading counts: %v", err)
	}
	ne, nv := counts[0], counts[1]

	m := &mesh.Mesh{
		Nv:     nv,
		Ne:     ne,
		Coords: make([][2]float64, nv),
		Depth:  make([]float64, nv),
		Tris:   make([][3]int, ne),
	}

	for i := 0; i < nv; i++ {
		if line, err = scanLine(sc); err != nil {
			return nil, fmt.Errorf("reading vertex %d: %v", i+1, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("vertex line %q: need id x y depth", line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 1 || id > nv {
			return nil, fmt.Errorf("vertex line %q: bad id", line)
		}
		var x, y, dp float64
		if x, err = strconv.ParseFloat(fields[1], 64); err == nil {
			if y, err = strconv.ParseFloat(fields[2], 64); err == nil {
				dp, err = strconv.ParseFloat(fields[3], 64)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("vertex line %q: %v", line, err)
		}
		m.Coords[id-1] = [2]float64{x, y}
		m.Depth[id-1] = dp
	}

	for k := 0; k < ne; k++ {
		if line, err = scanLine(sc); err != nil {
			return nil, fmt.Errorf("reading element %d: %v", k+1, err)
		}
		f, err := leadingInts(line, 5)
		if err != nil {
			return nil, fmt.Errorf("element line: %v", err)
		}
		id, nhy := f[0], f[1]
		if nhy != 3 {
			return nil, fmt.Errorf("element %d has %d vertices, only triangles supported", id, nhy)
		}
		if id < 1 || id > ne {
			return nil, fmt.Errorf("element line %q: bad id", line)
		}
		m.Tris[id-1] = [3]int{f[2], f[3], f[4]}
	}

	// Open boundaries: NOPE segments, NETA total nodes.
	nope, err := countLine(sc, "NOPE")
	if err != nil {
		return nil, err
	}
	if _, err = countLine(sc, "NETA"); err != nil {
		return nil, err
	}
	for s := 0; s < nope; s++ {
		seg, err := readBoundarySegment(sc, false)
		if err != nil {
			return nil, fmt.Errorf("open boundary %d: %v", s+1, err)
		}
		m.Open = append(m.Open, seg)
	}

	// Land boundaries: NBOU segments, NVEL total nodes. Absent in some
	// minimal meshes; treat EOF here as zero land boundaries.
	nbou, err := countLine(sc, "NBOU")
	if err != nil {
		return m, nil
	}
	if _, err = countLine(sc, "NVEL"); err != nil {
		return nil, err
	}
	for s := 0; s < nbou; s++ {
		seg, err := readBoundarySegment(sc, true)
		if err != nil {
			return nil, fmt.Errorf("land boundary %d: %v", s+1, err)
		}
		m.Land = append(m.Land, seg)
	}
	return m, nil
}

func countLine(sc *bufio.Scanner, what string) (int, error) {
	line, err := scanLine(sc)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %v", what, err)
	}
	n, err := leadingInt(line)
	if err != nil {
		return 0, fmt.Errorf("reading %s from %q: %v", what, line, err)
	}
	return n, nil
}

// readBoundarySegment reads one segment header line (node count, plus an
// IBTYPE code on land-boundary headers) followed by that many node lines.
func readBoundarySegment(sc *bufio.Scanner, typed bool) (*mesh.Segment, error) {
	line, err := scanLine(sc)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("segment header %q: %v", line, err)
	}
	seg := &mesh.Segment{Nodes: make([]int, n)}
	if typed && len(fields) > 1 {
		if bt, err := strconv.Atoi(fields[1]); err == nil {
			seg.Type = mesh.SegmentType(bt)
		}
	}
	for i := 0; i < n; i++ {
		if line, err = scanLine(sc); err != nil {
			return nil, fmt.Errorf("node %d: %v", i+1, err)
		}
		if seg.Nodes[i], err = leadingInt(line); err != nil {
			return nil, fmt.Errorf("node %d from %q: %v", i+1, line, err)
		}
	}
	return seg, nil
}
