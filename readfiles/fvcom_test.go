package readfiles

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceanmesh/fvprep/mesh"
)

func testMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Nv: 4,
		Ne: 2,
		Coords: [][2]float64{
			{0, 0}, {1, 0}, {0, 1}, {1, 1},
		},
		Depth: []float64{10, 12, 14, 16},
		Tris:  [][3]int{{1, 2, 3}, {2, 4, 3}},
		Open: []*mesh.Segment{
			{Nodes: []int{1, 2}, Type: 1},
		},
	}
}

func TestGrdRoundTrip(t *testing.T) {
	m := testMesh()
	var buf bytes.Buffer
	require.NoError(t, WriteGrd(&buf, m))

	got, err := ReadGrd(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Nv, got.Nv)
	assert.Equal(t, m.Ne, got.Ne)
	assert.Equal(t, m.Tris, got.Tris)
	assert.Equal(t, m.Coords, got.Coords)
}

func TestDepRoundTrip(t *testing.T) {
	m := testMesh()
	var buf bytes.Buffer
	require.NoError(t, WriteDep(&buf, m))

	depth, err := ReadDep(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Depth, depth)
}

func TestCorRoundTrip(t *testing.T) {
	m := testMesh()
	var buf bytes.Buffer
	require.NoError(t, WriteCor(&buf, m))

	lats, err := ReadCor(&buf)
	require.NoError(t, err)
	// Latitude is the y column.
	assert.Equal(t, []float64{0, 0, 1, 1}, lats)
}

func TestObcRoundTrip(t *testing.T) {
	m := testMesh()
	m.Open = append(m.Open, &mesh.Segment{Nodes: []int{4}, Type: 2})
	var buf bytes.Buffer
	require.NoError(t, WriteObc(&buf, m))

	segs, err := ReadObc(&buf)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, []int{1, 2}, segs[0].Nodes)
	assert.Equal(t, mesh.SegmentType(1), segs[0].Type)
	assert.Equal(t, []int{4}, segs[1].Nodes)
	assert.Equal(t, mesh.SegmentType(2), segs[1].Type)
}

func TestSpgRoundTrip(t *testing.T) {
	m := testMesh()
	require.NoError(t, m.ApplySponge(0, &mesh.Sponge{
		Radius: []float64{55598, 100000},
		Coeff:  []float64{0.001, 0.001},
	}))
	var buf bytes.Buffer
	require.NoError(t, WriteSpg(&buf, m))
	assert.Contains(t, buf.String(), "Sponge Node Number = 2")

	nodes, sp, err := ReadSpg(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, nodes)
	assert.Equal(t, []float64{55598, 100000}, sp.Radius)
	assert.Equal(t, []float64{0.001, 0.001}, sp.Coeff)
}

func TestWriteSigma(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSigma(&buf, 21))
	assert.Equal(t, "NUMBER OF SIGMA LEVELS = 21\nSIGMA COORDINATE TYPE = UNIFORM\n", buf.String())
	assert.Error(t, WriteSigma(&buf, 1))
}

func TestFVCOMCaseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := testMesh()
	require.NoError(t, m.ApplySponge(0, &mesh.Sponge{
		Radius: []float64{55598, 100000},
		Coeff:  []float64{0.001, 0.001},
	}))
	require.NoError(t, WriteFVCOMCase(dir, "tst", m))

	got, err := ReadFVCOMCase(filepath.Join(dir, "tst_grd.dat"))
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	assert.Equal(t, m.Tris, got.Tris)
	assert.Equal(t, m.Depth, got.Depth)
	require.Len(t, got.Open, 1)
	assert.Equal(t, []int{1, 2}, got.Open[0].Nodes)
	assert.True(t, got.Open[0].IsSponge)
	assert.Equal(t, []float64{55598, 100000}, got.Open[0].Radius)
}

func TestCasename(t *testing.T) {
	assert.Equal(t, "tst", Casename("runs/tst_grd.dat"))
	assert.Equal(t, "tst", Casename("tst_spg.dat"))
	assert.Equal(t, "ngc", Casename("/a/b/ngc_obc.dat"))
}
