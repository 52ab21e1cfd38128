// Package server implements the shapekit HTTP API.
//
// The API exposes stored scene documents and the shapekey operators over
// REST: upload and fetch scenes, then run check, fill, split, tidy, or
// prune against a stored scene's objects. Mutating operators persist the
// transformed scene back to the store.
//
// Errors are returned as a JSON envelope carrying the structured error
// code, so clients can distinguish blocked preconditions (409) from bad
// input (400) and missing resources (404).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/pawlygon/shapekit/pkg/errors"
	"github.com/pawlygon/shapekit/pkg/ops"
	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/scene/store"
)

// Server routes HTTP requests to scene storage and the operator runner.
type Server struct {
	scenes store.Store
	runner *ops.Runner
	logger *log.Logger
}

// New creates a server over the given scene store and runner.
func New(scenes store.Store, runner *ops.Runner, logger *log.Logger) *Server {
	return &Server{scenes: scenes, runner: runner, logger: logger}
}

// Routes builds the chi router with all endpoints registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/scenes", func(r chi.Router) {
		r.Get("/", s.handleListScenes)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.handlePutScene)
			r.Get("/", s.handleGetScene)
			r.Delete("/", s.handleDeleteScene)
			r.Get("/objects", s.handleListObjects)
			r.Post("/check", s.handleCheck)
			r.Post("/fill", s.handleFill)
			r.Post("/split", s.handleSplit)
			r.Post("/tidy", s.handleTidy)
			r.Post("/prune", s.handlePrune)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs each request with its id, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps structured error codes onto HTTP statuses.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsPrecondition(err):
		status = http.StatusConflict
	case code == apperrors.ErrCodeNotFound || code == apperrors.ErrCodeSceneNotFound:
		status = http.StatusNotFound
	case code == apperrors.ErrCodeInvalidInput || code == apperrors.ErrCodeInvalidName ||
		code == apperrors.ErrCodeInvalidScene || code == apperrors.ErrCodeInvalidRoster ||
		code == apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		code = apperrors.ErrCodeSceneNotFound
	}

	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = apperrors.UserMessage(err)
	respondJSON(w, status, body)
}

// loadScene fetches the scene addressed by the request's {id} parameter.
func (s *Server) loadScene(r *http.Request) (string, *scene.Scene, error) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSceneID(id); err != nil {
		return "", nil, err
	}
	sc, err := s.scenes.Get(r.Context(), id)
	if err != nil {
		return "", nil, err
	}
	return id, sc, nil
}
