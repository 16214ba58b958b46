package sponge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/fvprep/mesh"
)

// gridMesh builds the unit-quad test mesh scaled by deg degrees: vertices
// at (0,0), (deg,0), (0,deg), (deg,deg) in lon/lat, triangles (1,2,3) and
// (2,3,4), one open boundary segment [1, 4]. Vertex 5 is isolated.
func gridMesh(deg float64) *mesh.Mesh {
	return &mesh.Mesh{
		Nv: 5,
		Ne: 2,
		Coords: [][2]float64{
			{0, 0}, {deg, 0}, {0, deg}, {deg, deg}, {3, 3},
		},
		Depth: []float64{10, 10, 10, 10, 10},
		Tris:  [][3]int{{1, 2, 3}, {2, 3, 4}},
		Open:  []*mesh.Segment{{Nodes: []int{1, 4}}},
	}
}

func adjacency(t *testing.T, m *mesh.Mesh) *mesh.Adjacency {
	t.Helper()
	adj, err := mesh.NewAdjacency(m)
	require.NoError(t, err)
	return adj
}

func TestComputeCapsFarNeighbors(t *testing.T) {
	// One degree between neighbors is over 111 km, past the cap.
	m := gridMesh(1)
	sp, err := Compute(m, adjacency(t, m), 0, DefaultCoeff)
	require.NoError(t, err)
	assert.Equal(t, []float64{RadiusCapM, RadiusCapM}, sp.Radius)
}

func TestComputeNearNeighbors(t *testing.T) {
	// Half a degree between neighbors is about 55.6 km, under the cap.
	m := gridMesh(0.5)
	sp, err := Compute(m, adjacency(t, m), 0, DefaultCoeff)
	require.NoError(t, err)
	// Vertex 1's nearest neighbors sit half a degree away along the
	// equator and the prime meridian; vertex 4's nearest is half a
	// degree along the 0.5N latitude circle, which is slightly shorter.
	assert.Equal(t, []float64{55598, 55596}, sp.Radius)
	for _, r := range sp.Radius {
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, RadiusCapM)
	}
}

func TestComputeIsolatedVertex(t *testing.T) {
	// A boundary node with no adjacent triangles keeps the cap exactly,
	// even when the rest of the mesh is fine-resolution.
	m := gridMesh(0.5)
	m.Open = append(m.Open, &mesh.Segment{Nodes: []int{5}})
	sp, err := Compute(m, adjacency(t, m), 1, DefaultCoeff)
	require.NoError(t, err)
	assert.Equal(t, []float64{RadiusCapM}, sp.Radius)
}

func TestComputeCoefficientBroadcast(t *testing.T) {
	m := gridMesh(0.5)
	sp, err := Compute(m, adjacency(t, m), 0, 0.002)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.002, 0.002}, sp.Coeff)
}

func TestComputeIdempotent(t *testing.T) {
	m := gridMesh(0.5)
	adj := adjacency(t, m)
	sp1, err := Compute(m, adj, 0, DefaultCoeff)
	require.NoError(t, err)
	sp2, err := Compute(m, adj, 0, DefaultCoeff)
	require.NoError(t, err)
	assert.Equal(t, sp1.Radius, sp2.Radius)
	assert.Equal(t, sp1.Coeff, sp2.Coeff)

	require.NoError(t, m.ApplySponge(0, sp1))
	require.NoError(t, m.ApplySponge(0, sp2))
	assert.Equal(t, sp2.Radius, m.Open[0].Radius)
}

func TestComputeInvalidArguments(t *testing.T) {
	m := gridMesh(0.5)
	adj := adjacency(t, m)

	_, err := Compute(m, adj, 1, DefaultCoeff)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
	_, err = Compute(m, adj, -1, DefaultCoeff)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
	_, err = Compute(m, adj, 0, 0)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
	_, err = Compute(m, adj, 0, -0.001)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)

	// Failed calls leave the mesh untouched.
	assert.False(t, m.Open[0].IsSponge)
	assert.Nil(t, m.Open[0].Radius)
	assert.Nil(t, m.Open[0].Coeff)
}

func TestComputeCorruptMesh(t *testing.T) {
	m := gridMesh(0.5)
	adj := adjacency(t, m)
	m.Open[0].Nodes[1] = 99
	_, err := Compute(m, adj, 0, DefaultCoeff)
	assert.ErrorIs(t, err, mesh.ErrCorruptMesh)
	assert.False(t, m.Open[0].IsSponge)
	assert.Nil(t, m.Open[0].Radius)
}

func TestComputeManyNodes(t *testing.T) {
	// A segment longer than the worker count exercises the fan-out
	// striping; every slot must be filled.
	m := gridMesh(0.5)
	m.Open[0].Nodes = []int{1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2, 1, 2}
	sp, err := Compute(m, adjacency(t, m), 0, DefaultCoeff)
	require.NoError(t, err)
	require.Len(t, sp.Radius, 16)
	for i, r := range sp.Radius {
		assert.Equal(t, 55598.0, r, "slot %d", i)
		assert.Equal(t, DefaultCoeff, sp.Coeff[i], "slot %d", i)
	}
}
