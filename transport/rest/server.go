package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, manager gameManager) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, manager),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewRouter registers the ping endpoint and the session API.
func NewRouter(logger *slog.Logger, manager gameManager) http.Handler {
	h := newHandlers(logger, manager)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", ping)

	mux.HandleFunc("POST /api/sessions", h.createSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.deleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/move", h.move)
	mux.HandleFunc("POST /api/sessions/{id}/pass", h.pass)
	mux.HandleFunc("POST /api/sessions/{id}/undo", h.undo)
	mux.HandleFunc("POST /api/sessions/{id}/restart", h.restart)
	mux.HandleFunc("POST /api/sessions/{id}/command", h.command)
	mux.HandleFunc("GET /api/sessions/{id}/legal", h.legal)
	mux.HandleFunc("GET /api/sessions/{id}/history", h.history)

	return mux
}

// Start serves until ctx is canceled and then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		that.logger.Info("listening", "addr", that.srv.Addr)
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
