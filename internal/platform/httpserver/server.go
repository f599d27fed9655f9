package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	classroom "classtrack/contexts/academics/classroom-service"
	identity "classtrack/contexts/identity-access/identity-service"
	"classtrack/internal/shared/paging"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "classtrack/internal/platform/httpserver/docs"
)

const requestIDHeader = "X-Request-Id"

type Server struct {
	mux       *http.ServeMux
	handler   http.Handler
	logger    *slog.Logger
	addr      string
	identity  identity.Module
	classroom classroom.Module
	srv       *http.Server
}

func New(
	identityModule identity.Module,
	classroomModule classroom.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		identity:  identityModule,
		classroom: classroomModule,
	}
	s.registerRoutes()
	s.handler = s.withRequestID(s.withAccessLog(s.mux))
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the routed handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the server stops. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.srv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.registerIdentityRoutes()
	s.registerClassroomRoutes()
	s.registerReportRoutes()
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to ClassTrack API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(requestIDHeader, requestID)
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info("http request served",
			"event", "http_request_served",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(started).Milliseconds(),
			"request_id", r.Header.Get(requestIDHeader),
		)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pageFromQuery reads skip and limit; omitted values take the paging defaults.
func pageFromQuery(r *http.Request) (paging.Page, error) {
	query := r.URL.Query()
	var skip, limit *int
	for name, target := range map[string]**int{"skip": &skip, "limit": &limit} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return paging.Page{}, paging.ErrInvalidPage
		}
		*target = &value
	}
	return paging.New(skip, limit)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) logUnclassified(r *http.Request, err error) {
	s.logger.Error("unclassified request failure",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get(requestIDHeader),
		"error", err.Error(),
	)
}
