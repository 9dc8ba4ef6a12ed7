package scene

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

func TestRubik_Layout(t *testing.T) {
	nodes := Rubik()
	// root + 27 cubies + 27 materials + lamp + camera
	require.Len(t, nodes, 57)

	ids := map[NodeID]bool{}
	cubies := 0
	for _, n := range nodes {
		assert.False(t, ids[n.ID], "duplicate id %s", n.ID)
		ids[n.ID] = true
		if strings.HasPrefix(n.Name, "Cube.") && strings.Count(n.Name, ".") == 1 {
			cubies++
			for _, a := range geom.Axes {
				v := n.Transform.Position.Component(a)
				assert.Contains(t, []float64{-2, 0, 2}, v, "%s off lattice", n.Name)
			}
		}
	}
	assert.Equal(t, 27, cubies)
}

func TestEncodeDecode_PreservesNodes(t *testing.T) {
	in := []Node{
		{ID: "a", Name: "Cube.001", Transform: geom.Transform{Position: geom.Vec3{X: 2, Y: -2}, Rotation: geom.AxisAngle(geom.PosY, 1)}},
		{ID: "b", Name: "Lamp", Transform: geom.Transform{Rotation: geom.Identity}},
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Name, out[i].Name)
		assert.True(t, in[i].Transform.ApproxEqual(out[i].Transform, 1e-12))
	}
}

func TestDecode_Defaults(t *testing.T) {
	doc := `
nodes:
  - name: Cube.005
    position: [0, 2, -2]
`
	out, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].ID)
	assert.Equal(t, geom.Identity, out[0].Transform.Rotation)
	assert.Equal(t, geom.Vec3{Y: 2, Z: -2}, out[0].Transform.Position)
}

func TestDecode_BadRotation(t *testing.T) {
	_, err := Decode(strings.NewReader("nodes:\n  - name: x\n    rotation: [1, 0]\n"))
	assert.Error(t, err)
}

func TestFileSource_BecomesReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene", "rubik.yaml")
	require.NoError(t, Save(path, Rubik()))

	src := NewFileSource(context.Background(), path)
	var nodes []Node
	require.Eventually(t, func() bool {
		n, ready, err := src.Poll()
		if err != nil {
			return false
		}
		nodes = n
		return ready
	}, 5*time.Second, time.Millisecond)
	assert.Len(t, nodes, 57)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Eventually(t, func() bool {
		_, _, err := src.Poll()
		return err != nil
	}, 5*time.Second, time.Millisecond)
}

func TestStaticSource(t *testing.T) {
	nodes, ready, err := NewStaticSource(Rubik()).Poll()
	assert.NoError(t, err)
	assert.True(t, ready)
	assert.Len(t, nodes, 57)
}
