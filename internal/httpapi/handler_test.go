package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l1jgo/colshape/internal/colshape"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (http.Handler, *colshape.Manager) {
	t.Helper()
	shapes := colshape.NewManager(colshape.Options{})
	require.True(t, shapes.CreateSphere("dome", colshape.Vector3{X: 1, Y: 2, Z: 3}, 5, false))
	require.True(t, shapes.CreateCube("sea", colshape.Vector3{X: -5000, Y: -5000}, colshape.Vector3{X: 5000, Y: 5000, Z: 10}, false))
	return NewHandler(shapes, zap.NewNop()), shapes
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandleHealthCheck(t *testing.T) {
	h, _ := newTestHandler(t)
	require.Equal(t, http.StatusOK, get(t, h, "/health").Code)
}

func TestHandleShapes(t *testing.T) {
	h, _ := newTestHandler(t)

	w := get(t, h, "/shapes")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var shapes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shapes))
	require.Len(t, shapes, 2)

	byID := map[string]map[string]any{}
	for _, s := range shapes {
		byID[s["id"].(string)] = s
	}
	require.Equal(t, "sphere", byID["dome"]["kind"])
	require.Equal(t, false, byID["dome"]["unbounded"])
	require.Equal(t, "cube", byID["sea"]["kind"])
	require.Equal(t, true, byID["sea"]["unbounded"])
}

func TestHandleShapeByID(t *testing.T) {
	h, _ := newTestHandler(t)

	w := get(t, h, "/shapes/dome")
	require.Equal(t, http.StatusOK, w.Code)

	var s colshape.Shape
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	require.Equal(t, "dome", s.ID)
	require.Equal(t, colshape.KindSphere, s.Kind)
	require.Equal(t, colshape.Vector3{X: 1, Y: 2, Z: 3}, s.Pos1)

	require.Equal(t, http.StatusNotFound, get(t, h, "/shapes/missing").Code)
}

func TestHandleInsideAndStats(t *testing.T) {
	h, shapes := newTestHandler(t)

	shapes.Tick(colshape.PositionFunc(func() (colshape.Vector3, bool) {
		return colshape.Vector3{X: 1, Y: 2, Z: 3}, true
	}))

	var inside []string
	require.NoError(t, json.Unmarshal(get(t, h, "/inside").Body.Bytes(), &inside))
	require.Equal(t, []string{"dome", "sea"}, inside)

	var stats colshape.Stats
	require.NoError(t, json.Unmarshal(get(t, h, "/stats").Body.Bytes(), &stats))
	require.Equal(t, colshape.Stats{Shapes: 2, Unbounded: 1, Cells: 4, Inside: 2}, stats)
}

func TestHandleMetrics(t *testing.T) {
	h, _ := newTestHandler(t)

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "colshape_shapes")
}
