// Package httpapi exposes location analysis over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/analysis"
	"github.com/localscope/localscope-cli/internal/viability"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Analyzer runs a full analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Report, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	analyzer  Analyzer
	evaluator *viability.Evaluator
	origins   []string
	timeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithRequestTimeout bounds each request. Non-positive values keep the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Server. analyzer may be nil, in which case /v1/analyze
// answers 503.
func New(a Analyzer, e *viability.Evaluator, opts ...Option) *Server {
	s := &Server{
		analyzer:  a,
		evaluator: e,
		origins:   []string{"*"},
		timeout:   30 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.analyze)
		r.Post("/evaluate", s.evaluate)
		r.Get("/neighborhoods", s.neighborhoods)
		r.Get("/categories", s.categories)
	})
	return r
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("httpapi: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("httpapi: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeAnalysisError maps analysis errors to status codes.
func writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var ie *analysis.InputError
	var re *analysis.ResolutionError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, analysis.UserMessage(err))
	case errors.As(err, &re):
		zap.L().Warn("httpapi: resolution failed", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, analysis.UserMessage(err))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "analysis timed out")
	default:
		zap.L().Error("httpapi: analysis failed", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
