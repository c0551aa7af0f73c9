package httpapi

import (
	"net/http"

	"github.com/l1jgo/colshape/internal/colshape"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

// NewHandler builds the introspection mux:
//
//	/health   liveness
//	/shapes   every registered shape
//	/shapes/{id}
//	/inside   ids containing the tracked point after the last tick
//	/stats    index occupancy
//	/metrics  prometheus
func NewHandler(shapes *colshape.Manager, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HandleHealthCheck)
	mux.HandleFunc("GET /shapes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, shapes.Snapshot())
	})
	mux.HandleFunc("GET /shapes/{id}", func(w http.ResponseWriter, r *http.Request) {
		s, ok := shapes.Get(r.PathValue("id"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, log, s)
	})
	mux.HandleFunc("GET /inside", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, shapes.Inside())
	})
	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, shapes.Stats())
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("encoding response failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
