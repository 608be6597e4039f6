package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"commander/db"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CommandsPath is the base path of the command resource.
	CommandsPath   = "/api/commands"
	DefaultAddress = "127.0.0.1:5000"
	maxBodyBytes   = 1 << 20
)

// ServerOptions configures the HTTP server.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *zap.Logger
}

// Server hosts the command API.
type Server struct {
	http   *http.Server
	store  db.Store
	logger *zap.Logger
	opts   ServerOptions
}

// NewServer constructs a server over store. Nothing listens until
// ListenAndServe or Serve is called.
func NewServer(store db.Store, opts ServerOptions) *Server {
	if store == nil {
		panic("api.NewServer: store is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{
		store:  store,
		logger: opts.Logger,
		opts:   opts,
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           withBasicMiddleware(mux, opts.Logger),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			ErrorLog:          zap.NewStdLog(opts.Logger),
		},
	}

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET "+CommandsPath, s.handleListCommands)
	mux.HandleFunc("GET "+CommandsPath+"/{$}", s.handleListCommands)
	mux.HandleFunc("GET "+CommandsPath+"/{id}", s.handleGetCommand)
	mux.HandleFunc("POST "+CommandsPath, s.handleCreateCommand)
	mux.HandleFunc("POST "+CommandsPath+"/{$}", s.handleCreateCommand)
	mux.HandleFunc("PUT "+CommandsPath+"/{id}", s.handleUpdateCommand)
	mux.HandleFunc("PATCH "+CommandsPath+"/{id}", s.handlePatchCommand)
	mux.HandleFunc("DELETE "+CommandsPath+"/{id}", s.handleDeleteCommand)

	mux.HandleFunc("GET "+openAPIPath, s.handleOpenAPI)
	mux.HandleFunc("GET /swagger/{$}", s.handleSwaggerUI)

	return s
}

// Handler exposes the routed handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving on the configured address until Stop is
// called. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve blocks serving on l until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("api: listening", zap.String("addr", l.Addr().String()))
	if err := s.http.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": TimeNow().UTC().Format(time.RFC3339),
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

// Basic middleware: request id, body limit and one log line per request.
func withBasicMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := TimeNow()

		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", reqID),
		)
	})
}

// writeJSON defaults the content type to JSON unless the caller already set one.
func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIError{
		Error:     msg,
		Timestamp: TimeNow().UTC().Format(time.RFC3339),
	})
}
