package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/colshape/internal/colshape"
	"github.com/stretchr/testify/require"
)

const shapeList = `
- id: spawn_plaza
  type: circle
  x: 100
  y: 200
  radius: 50
  note: town square
- id: bank_vault
  type: cube
  x: 10
  y: 10
  z: -5
  x2: 20
  y2: 30
  z2: 5
- id: tower
  type: cylinder
  x: -300
  y: 0
  z: 0
  radius: 12
  height: 80
- id: harbor
  type: rectangle
  x: 0
  y: 0
  x2: 100
  y2: 100
  bottom_z: -1
  height: 2
- id: dome
  type: sphere
  x: 0
  y: 0
  z: 0
  radius: 5
- id: ocean
  type: rectangle
  x: -50000
  y: -50000
  x2: 50000
  y2: 50000
  bottom_z: -100
  height: 100
- id: dome
  type: sphere
  radius: 99
`

func writeShapeList(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shape_list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadShapeTable(t *testing.T) {
	table, err := LoadShapeTable(writeShapeList(t, shapeList))
	require.NoError(t, err)
	require.Equal(t, 7, table.Count())

	first := table.Entries()[0]
	require.Equal(t, "spawn_plaza", first.ID)
	require.Equal(t, colshape.KindCircle, first.kind)
	require.Equal(t, "town square", first.Note)
}

func TestShapeTableSpawn(t *testing.T) {
	table, err := LoadShapeTable(writeShapeList(t, shapeList))
	require.NoError(t, err)

	m := colshape.NewManager(colshape.Options{})
	created, rejected := table.Spawn(m)
	require.Equal(t, 6, created)
	require.Equal(t, []string{"dome"}, rejected)

	dome, ok := m.Get("dome")
	require.True(t, ok)
	require.Equal(t, 5.0, dome.Radius)

	harbor, ok := m.Get("harbor")
	require.True(t, ok)
	require.Equal(t, -1.0, harbor.Pos1.Z)
	require.Equal(t, 2.0, harbor.Height)

	ocean, ok := m.Get("ocean")
	require.True(t, ok)
	require.True(t, ocean.Unbounded)
}

func TestLoadShapeTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadShapeTable(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := LoadShapeTable(writeShapeList(t, "- id: a\n  type: torus\n"))
		require.ErrorContains(t, err, "torus")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := LoadShapeTable(writeShapeList(t, "- type: circle\n  radius: 3\n"))
		require.ErrorContains(t, err, "no id")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadShapeTable(writeShapeList(t, "- id: [\n"))
		require.Error(t, err)
	})
}
