package colshape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAdd(t *testing.T) {
	t.Run("shape is stored and resolvable", func(t *testing.T) {
		r := NewRegistry(0, 0)

		h, err := r.Add(newSphere("s1", Vector3{}, 5, false))
		require.NoError(t, err)
		require.False(t, h.IsZero())
		require.Equal(t, 1, r.Len())

		s, ok := r.Resolve(h)
		require.True(t, ok)
		require.Equal(t, "s1", s.ID)

		s, ok = r.Lookup("s1")
		require.True(t, ok)
		require.Equal(t, h, s.handle)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		r := NewRegistry(0, 0)

		_, err := r.Add(newSphere("s1", Vector3{}, 5, false))
		require.NoError(t, err)
		_, err = r.Add(newCube("s1", Vector3{}, Vector3{1, 1, 1}, false))
		require.ErrorIs(t, err, ErrDuplicateID)
		require.Equal(t, 1, r.Len())

		s, _ := r.Lookup("s1")
		require.Equal(t, KindSphere, s.Kind)
		require.Equal(t, 5.0, s.Radius)
	})
}

func TestRegistryBoundedness(t *testing.T) {
	t.Run("large shape is forced unbounded", func(t *testing.T) {
		r := NewRegistry(1000, 2000)
		s := newCube("huge", Vector3{0, 0, 0}, Vector3{3000, 3000, 10}, false)
		_, err := r.Add(s)
		require.NoError(t, err)
		require.True(t, s.Unbounded)
		require.Equal(t, 1, r.UnboundedLen())
		require.Zero(t, r.Grid().CellCount())
	})

	t.Run("one oversized axis is enough", func(t *testing.T) {
		r := NewRegistry(1000, 2000)
		s := newRectangle("strip", 0, 0, 2001, 10, 0, 1, false)
		_, err := r.Add(s)
		require.NoError(t, err)
		require.True(t, s.Unbounded)
	})

	t.Run("threshold itself stays bounded", func(t *testing.T) {
		r := NewRegistry(1000, 2000)
		s := newCircle("edge", Vector3{}, 1000, false)
		_, err := r.Add(s)
		require.NoError(t, err)
		require.False(t, s.Unbounded)
		require.Zero(t, r.UnboundedLen())
	})

	t.Run("caller may request unbounded", func(t *testing.T) {
		r := NewRegistry(1000, 2000)
		s := newSphere("small", Vector3{}, 1, true)
		_, err := r.Add(s)
		require.NoError(t, err)
		require.True(t, s.Unbounded)
		require.Zero(t, r.Grid().CellCount())
	})
}

func TestRegistryCellSizeIsClamped(t *testing.T) {
	r := NewRegistry(0.01, 2000)
	require.Equal(t, 2000/MaxCellsPerSide, r.Grid().CellSize())

	// The widest bounded shape spans 65 cells per side, not 200001.
	s := newCircle("edge", Vector3{}, 1000, false)
	_, err := r.Add(s)
	require.NoError(t, err)
	require.False(t, s.Unbounded)
	require.Equal(t, 65*65, r.Grid().CellCount())

	require.Equal(t, 250.0, ClampCellSize(250, 2000))
	require.Equal(t, DefaultCellSize, ClampCellSize(0, 0))
}

func TestRegistryNegativeRadiusOccupiesCells(t *testing.T) {
	r := NewRegistry(1000, 2000)
	s := newSphere("neg", Vector3{X: 10, Y: 10}, -5, false)
	_, err := r.Add(s)
	require.NoError(t, err)

	require.Less(t, s.MinX, s.MaxX)
	require.Less(t, s.MinY, s.MaxY)
	require.Equal(t, 1, r.Grid().CellCount())

	var found []string
	r.Candidates(Vector3{X: 12, Y: 12}, func(c *Shape) { found = append(found, c.ID) })
	require.Equal(t, []string{"neg"}, found)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry(0, 0)
	h, err := r.Add(newCircle("c", Vector3{}, 5, false))
	require.NoError(t, err)
	u, err := r.Add(newCircle("u", Vector3{}, 5, true))
	require.NoError(t, err)

	got, err := r.Remove("c")
	require.NoError(t, err)
	require.Equal(t, h, got)
	_, ok := r.Resolve(h)
	require.False(t, ok)

	_, err = r.Remove("u")
	require.NoError(t, err)
	_, ok = r.Resolve(u)
	require.False(t, ok)
	require.Zero(t, r.UnboundedLen())

	for i := 0; i < 2; i++ {
		_, err = r.Remove("c")
		require.ErrorIs(t, err, ErrNotFound)
	}
}

func TestRegistryHandlesAreNotReused(t *testing.T) {
	r := NewRegistry(0, 0)
	old, err := r.Add(newCircle("a", Vector3{}, 5, false))
	require.NoError(t, err)
	_, err = r.Remove("a")
	require.NoError(t, err)

	fresh, err := r.Add(newCircle("a", Vector3{}, 5, false))
	require.NoError(t, err)
	require.NotEqual(t, old, fresh)
	require.Equal(t, old.index(), fresh.index())

	_, ok := r.Resolve(old)
	require.False(t, ok)
	_, ok = r.Resolve(fresh)
	require.True(t, ok)
}

func TestRegistryCandidates(t *testing.T) {
	r := NewRegistry(1000, 2000)
	_, err := r.Add(newCircle("near", Vector3{100, 100, 0}, 10, false))
	require.NoError(t, err)
	_, err = r.Add(newCircle("far", Vector3{5100, 5100, 0}, 10, false))
	require.NoError(t, err)
	_, err = r.Add(newCube("world", Vector3{-50000, -50000, -100}, Vector3{50000, 50000, 100}, false))
	require.NoError(t, err)

	var ids []string
	r.Candidates(Vector3{150, 150, 0}, func(s *Shape) { ids = append(ids, s.ID) })
	require.ElementsMatch(t, []string{"near", "world"}, ids)

	ids = nil
	r.Candidates(Vector3{-30000, 40000, 0}, func(s *Shape) { ids = append(ids, s.ID) })
	require.Equal(t, []string{"world"}, ids)
}
