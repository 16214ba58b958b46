package mesh

import (
	"fmt"
)

// Sentinel errors for the core computation paths. Codec I/O failures are
// plain errors and never wrap these.
var (
	// ErrInvalidArgument indicates a caller error: bad segment index,
	// non-positive damping coefficient, malformed vertex list.
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// ErrCorruptMesh indicates the mesh references a vertex outside
	// [1, Nv], or coordinate storage is shorter than Nv.
	ErrCorruptMesh = fmt.Errorf("corrupt mesh")
)

// SegmentType classifies a boundary segment using the file-level integer
// code carried by ADCIRC fort.14 (IBTYPE) and FVCOM obc files.
type SegmentType int

// Segment is one boundary node string. Nodes holds 1-based vertex IDs in
// the order they were read. Radius and Coeff are populated only through
// (*Mesh).ApplySponge and always match len(Nodes).
type Segment struct {
	Nodes    []int
	Type     SegmentType
	IsSponge bool
	Radius   []float64
	Coeff    []float64
}

// Sponge holds a computed sponge layer for one open-boundary segment:
// one damping radius (meters) and one coefficient per segment node, in
// segment node order.
type Sponge struct {
	Radius []float64
	Coeff  []float64
}

// Mesh is the in-memory grid shared by all codecs and the sponge
// calculator. Vertex IDs are 1-based throughout, matching the file
// conventions of both ADCIRC and FVCOM: vertex id i maps to Coords[i-1].
//
// Depth follows a single canonical convention: bathymetric depth of the
// sea floor below the geoid, positive down. ADCIRC fort.14 depth and FVCOM
// h agree under this convention; any sign flip for meshes that store
// free-surface elevation instead is applied once, at read time.
//
// Topology is fixed at load time. Tris is the only topology source; there
// is no persisted edge or adjacency list.
type Mesh struct {
	Nv, Ne int
	Coords [][2]float64 // per vertex: x/lon, y/lat
	Depth  []float64    // per vertex, positive down
	Tris   [][3]int     // per element: three 1-based vertex IDs

	Open []*Segment
	Land []*Segment
}

// Coord returns the (x, y) pair for 1-based vertex id v.
func (m *Mesh) Coord(v int) (x, y float64, err error) {
	if v < 1 || v > m.Nv {
		return 0, 0, fmt.Errorf("vertex %d outside [1, %d]: %w", v, m.Nv, ErrCorruptMesh)
	}
	if len(m.Coords) < m.Nv {
		return 0, 0, fmt.Errorf("coordinate table has %d of %d vertices: %w",
			len(m.Coords), m.Nv, ErrCorruptMesh)
	}
	return m.Coords[v-1][0], m.Coords[v-1][1], nil
}

// LatLon returns vertex v's position in degrees for geodesic work. The
// mesh must already be in geographic coordinates (lon = x, lat = y).
func (m *Mesh) LatLon(v int) (lat, lon float64, err error) {
	x, y, err := m.Coord(v)
	if err != nil {
		return 0, 0, err
	}
	return y, x, nil
}

// Validate checks the invariants every codec must establish before the
// mesh is handed to the core: counts match storage, and every vertex ID
// referenced by a triangle or boundary segment lands in [1, Nv].
func (m *Mesh) Validate() error {
	if m.Nv <= 0 || m.Ne <= 0 {
		return fmt.Errorf("vertex/element counts %d/%d: %w", m.Nv, m.Ne, ErrCorruptMesh)
	}
	if len(m.Coords) != m.Nv {
		return fmt.Errorf("have %d coordinates for %d vertices: %w",
			len(m.Coords), m.Nv, ErrCorruptMesh)
	}
	if len(m.Tris) != m.Ne {
		return fmt.Errorf("have %d triangles for %d elements: %w",
			len(m.Tris), m.Ne, ErrCorruptMesh)
	}
	for k, tri := range m.Tris {
		for _, v := range tri {
			if v < 1 || v > m.Nv {
				return fmt.Errorf("triangle %d references vertex %d outside [1, %d]: %w",
					k+1, v, m.Nv, ErrCorruptMesh)
			}
		}
	}
	for _, grp := range [][]*Segment{m.Open, m.Land} {
		for i, seg := range grp {
			for _, v := range seg.Nodes {
				if v < 1 || v > m.Nv {
					return fmt.Errorf("boundary segment %d references vertex %d outside [1, %d]: %w",
						i+1, v, m.Nv, ErrCorruptMesh)
				}
			}
		}
	}
	return nil
}

// ApplySponge installs a computed sponge layer on open-boundary segment
// segIdx. The three sponge fields change together, so a reader never
// observes a partially updated segment. Reapplying overwrites.
func (m *Mesh) ApplySponge(segIdx int, sp *Sponge) error {
	if segIdx < 0 || segIdx >= len(m.Open) {
		return fmt.Errorf("open boundary segment %d of %d: %w",
			segIdx, len(m.Open), ErrInvalidArgument)
	}
	seg := m.Open[segIdx]
	if len(sp.Radius) != len(seg.Nodes) || len(sp.Coeff) != len(seg.Nodes) {
		return fmt.Errorf("sponge arrays sized %d/%d for %d nodes: %w",
			len(sp.Radius), len(sp.Coeff), len(seg.Nodes), ErrInvalidArgument)
	}
	seg.Radius = sp.Radius
	seg.Coeff = sp.Coeff
	seg.IsSponge = true
	return nil
}

// OpenNodeUnion returns the union of all open-boundary vertex IDs,
// deduplicated, ordered by first occurrence across segments. This is the
// node order contract for OTPS setup files and the obc forcing NetCDF.
func (m *Mesh) OpenNodeUnion() (nodes []int) {
	seen := make(map[int]bool)
	for _, seg := range m.Open {
		for _, v := range seg.Nodes {
			if !seen[v] {
				seen[v] = true
				nodes = append(nodes, v)
			}
		}
	}
	return nodes
}
