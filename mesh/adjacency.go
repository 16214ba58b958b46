package mesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
)

// Adjacency answers vertex adjacency queries against a fixed triangle
// list. It precomputes a vertex-to-element incidence matrix once per mesh
// so each query is proportional to the vertex fan-out rather than to the
// element count. The matrix is assembled in DOK form and converted to CSR
// for row queries.
type Adjacency struct {
	nv, ne int
	tris   [][3]int
	vToE   *sparse.CSR // Nv x Ne incidence, row v-1 marks elements touching v
}

// NewAdjacency builds the incidence index for m. The mesh must have been
// validated; triangle vertex IDs outside [1, Nv] fail here with
// ErrCorruptMesh rather than later inside a query.
func NewAdjacency(m *Mesh) (*Adjacency, error) {
	vToE := sparse.NewDOK(m.Nv, m.Ne)
	for k, tri := range m.Tris {
		for _, v := range tri {
			if v < 1 || v > m.Nv {
				return nil, fmt.Errorf("triangle %d references vertex %d outside [1, %d]: %w",
					k+1, v, m.Nv, ErrCorruptMesh)
			}
			vToE.Set(v-1, k, 1)
		}
	}
	return &Adjacency{
		nv:   m.Nv,
		ne:   m.Ne,
		tris: m.Tris,
		vToE: vToE.ToCSR(),
	}, nil
}

// TrianglesContaining returns the 0-based indices of every triangle with
// vertexID as one of its corners, ascending. An isolated vertex (present
// in the coordinate table, referenced by no triangle) yields an empty
// slice; that is a valid result, not an error.
func (a *Adjacency) TrianglesContaining(vertexID int) ([]int, error) {
	if vertexID < 1 || vertexID > a.nv {
		return nil, fmt.Errorf("vertex %d outside [1, %d]: %w", vertexID, a.nv, ErrInvalidArgument)
	}
	elems := make([]int, 0, a.vToE.RowNNZ(vertexID-1))
	a.vToE.DoRowNonZero(vertexID-1, func(i, j int, v float64) {
		elems = append(elems, j)
	})
	sort.Ints(elems)
	return elems, nil
}

// NeighborsOf returns every vertex directly connected to vertexID through
// some shared triangle, deduplicated, ascending, excluding vertexID
// itself. Empty for isolated vertices.
func (a *Adjacency) NeighborsOf(vertexID int) ([]int, error) {
	elems, err := a.TrianglesContaining(vertexID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	for _, k := range elems {
		for _, v := range a.tris[k] {
			if v != vertexID {
				seen[v] = true
			}
		}
	}
	nbrs := make([]int, 0, len(seen))
	for v := range seen {
		nbrs = append(nbrs, v)
	}
	sort.Ints(nbrs)
	return nbrs, nil
}
