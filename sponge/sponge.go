// Package sponge derives the open-boundary sponge-layer damping
// parameters for an FVCOM run: for each open-boundary node, a damping
// radius adapted to the local mesh resolution (distance to the nearest
// directly connected vertex, capped), and a broadcast damping
// coefficient.
package sponge

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/oceanmesh/fvprep/geodesy"
	"github.com/oceanmesh/fvprep/mesh"
)

// RadiusCapM is the maximum sponge radius a node may receive, in meters.
// A node whose nearest neighbor is farther than this, or that has no
// neighbors at all, gets exactly the cap.
const RadiusCapM = 100000.0

// DefaultCoeff is the damping coefficient used when the caller does not
// supply one.
const DefaultCoeff = 0.001

// Compute derives the sponge layer for open-boundary segment segIdx of m.
// The result is returned as a fresh value; nothing on the mesh changes.
// Callers install it with (*mesh.Mesh).ApplySponge, so a failed
// computation leaves every segment exactly as it was.
//
// For each node v in the segment, in segment order: the damping radius is
// the minimum great-circle distance from v to any vertex sharing a
// triangle with v, capped at RadiusCapM. A node with no adjacent
// triangles is a valid degenerate input and keeps the cap. The
// coefficient is the same scalar for every node in the segment.
func Compute(m *mesh.Mesh, adj *mesh.Adjacency, segIdx int, coeff float64) (*mesh.Sponge, error) {
	if segIdx < 0 || segIdx >= len(m.Open) {
		return nil, fmt.Errorf("open boundary segment %d of %d: %w",
			segIdx, len(m.Open), mesh.ErrInvalidArgument)
	}
	if coeff <= 0 {
		return nil, fmt.Errorf("damping coefficient %g must be positive: %w",
			coeff, mesh.ErrInvalidArgument)
	}
	nodes := m.Open[segIdx].Nodes
	sp := &mesh.Sponge{
		Radius: make([]float64, len(nodes)),
		Coeff:  make([]float64, len(nodes)),
	}

	// Per-node results are independent, so fan the loop out over a
	// bounded set of workers, each writing a disjoint slot.
	np := runtime.NumCPU()
	if np > len(nodes) {
		np = len(nodes)
	}
	if np < 1 {
		np = 1
	}
	errs := make([]error, np)
	var wg sync.WaitGroup
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := worker; i < len(nodes); i += np {
				r, err := nodeRadius(m, adj, nodes[i])
				if err != nil {
					errs[worker] = err
					return
				}
				sp.Radius[i] = r
				sp.Coeff[i] = coeff
			}
		}(n)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func nodeRadius(m *mesh.Mesh, adj *mesh.Adjacency, v int) (float64, error) {
	lat, lon, err := m.LatLon(v)
	if err != nil {
		return 0, err
	}
	nbrs, err := adj.NeighborsOf(v)
	if err != nil {
		// The segment handed us an ID the adjacency index rejects:
		// the mesh and its boundary lists disagree.
		return 0, fmt.Errorf("open boundary node %d: %w", v, mesh.ErrCorruptMesh)
	}
	if len(nbrs) == 0 {
		return RadiusCapM, nil
	}
	dists := make([]float64, len(nbrs))
	for i, n := range nbrs {
		nlat, nlon, err := m.LatLon(n)
		if err != nil {
			return 0, err
		}
		dists[i] = geodesy.DistanceMeters(lat, lon, nlat, nlon)
	}
	return math.Min(RadiusCapM, floats.Min(dists)), nil
}
