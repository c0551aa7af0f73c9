package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// ListenAndServe runs the servers until ctx is cancelled, then shuts them
// down and returns once every server has stopped.
func ListenAndServe(ctx context.Context, log *zap.Logger, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			if err := s.Shutdown(context.Background()); err != nil {
				log.Warn("shutting down the server failed", zap.String("addr", s.Addr), zap.Error(err))
			}
		}
	}()

	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			log.Info("starting server", zap.String("addr", s.Addr))

			err := s.ListenAndServe()
			switch {
			case err == nil, errors.Is(err, http.ErrServerClosed), errors.Is(err, context.Canceled):
				log.Info("stopping server", zap.String("addr", s.Addr))

			default:
				log.Warn("server stopped", zap.String("addr", s.Addr), zap.Error(err))
			}
		}(s)
	}

	wg.Wait()
}
