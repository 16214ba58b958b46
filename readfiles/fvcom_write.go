package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oceanmesh/fvprep/mesh"
)

// WriteFVCOMCase writes the FVCOM native input set for m into dir:
// <casename>_grd.dat, _dep.dat, _cor.dat and _obc.dat, plus _spg.dat when
// any open-boundary segment carries a computed sponge layer. The mesh
// must be in geographic coordinates; the Coriolis file takes its latitude
// from the y coordinate.
func WriteFVCOMCase(dir, casename string, m *mesh.Mesh) error {
	writers := []struct {
		suffix string
		fn     func(io.Writer, *mesh.Mesh) error
	}{
		{"_grd.dat", WriteGrd},
		{"_dep.dat", WriteDep},
		{"_cor.dat", WriteCor},
		{"_obc.dat", WriteObc},
	}
	for _, w := range writers {
		if err := writeFile(filepath.Join(dir, casename+w.suffix), m, w.fn); err != nil {
			return err
		}
	}
	for _, seg := range m.Open {
		if seg.IsSponge {
			return writeFile(filepath.Join(dir, casename+"_spg.dat"), m, WriteSpg)
		}
	}
	return nil
}

func writeFile(path string, m *mesh.Mesh, fn func(io.Writer, *mesh.Mesh) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err = fn(w, m); err != nil {
		f.Close()
		return fmt.Errorf("%s: %v", path, err)
	}
	if err = w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %v", path, err)
	}
	return f.Close()
}

// WriteGrd writes the grid file: cell connectivity then node coordinates.
func WriteGrd(w io.Writer, m *mesh.Mesh) error {
	fmt.Fprintf(w, "Node Number = %d\n", m.Nv)
	fmt.Fprintf(w, "Cell Number = %d\n", m.Ne)
	for k, tri := range m.Tris {
		fmt.Fprintf(w, "%d %d %d %d\n", k+1, tri[0], tri[1], tri[2])
	}
	for i, c := range m.Coords {
		if _, err := fmt.Fprintf(w, "%d %.6f %.6f\n", i+1, c[0], c[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteDep writes the bathymetry file: x y h, positive down.
func WriteDep(w io.Writer, m *mesh.Mesh) error {
	fmt.Fprintf(w, "Node Number = %d\n", m.Nv)
	for i, c := range m.Coords {
		if _, err := fmt.Fprintf(w, "%.6f %.6f %.6f\n", c[0], c[1], m.Depth[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteCor writes the Coriolis file: x y latitude.
func WriteCor(w io.Writer, m *mesh.Mesh) error {
	fmt.Fprintf(w, "Node Number = %d\n", m.Nv)
	for _, c := range m.Coords {
		if _, err := fmt.Fprintf(w, "%.6f %.6f %.6f\n", c[0], c[1], c[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteObc writes the open-boundary node file, flattening the segments in
// order: counter, node id, segment type code.
func WriteObc(w io.Writer, m *mesh.Mesh) error {
	n := 0
	for _, seg := range m.Open {
		n += len(seg.Nodes)
	}
	fmt.Fprintf(w, "OBC Node Number = %d\n", n)
	i := 0
	for _, seg := range m.Open {
		for _, v := range seg.Nodes {
			i++
			if _, err := fmt.Fprintf(w, "%d %d %d\n", i, v, int(seg.Type)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSpg writes the sponge file: node id, damping radius in meters,
// damping coefficient, over every sponge-carrying segment in order.
func WriteSpg(w io.Writer, m *mesh.Mesh) error {
	n := 0
	for _, seg := range m.Open {
		if seg.IsSponge {
			n += len(seg.Nodes)
		}
	}
	fmt.Fprintf(w, "Sponge Node Number = %d\n", n)
	for _, seg := range m.Open {
		if !seg.IsSponge {
			continue
		}
		for i, v := range seg.Nodes {
			if _, err := fmt.Fprintf(w, "%d %f %f\n", v, seg.Radius[i], seg.Coeff[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSigma writes a uniform sigma-coordinate definition file with the
// given number of levels.
func WriteSigma(w io.Writer, levels int) error {
	if levels < 2 {
		return fmt.Errorf("sigma levels %d: need at least 2", levels)
	}
	fmt.Fprintf(w, "NUMBER OF SIGMA LEVELS = %d\n", levels)
	_, err := fmt.Fprintf(w, "SIGMA COORDINATE TYPE = UNIFORM\n")
	return err
}

// WriteSigmaFile writes <casename>_sigma.dat into dir.
func WriteSigmaFile(dir, casename string, levels int) error {
	f, err := os.Create(filepath.Join(dir, casename+"_sigma.dat"))
	if err != nil {
		return err
	}
	if err = WriteSigma(f, levels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
