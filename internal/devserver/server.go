// Package devserver serves a portfolio site locally with live reload and a
// contact endpoint that validates submissions the way the page does.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/cdelgado/portfolio/internal/config"
)

// ReloadPath is where pages open their live-reload websocket.
const ReloadPath = "/__reload"

// Server is the preview server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	root   string

	watcher   *fsnotify.Watcher
	wsClients map[*websocket.Conn]bool
	wsMutex   sync.Mutex
	upgrader  websocket.Upgrader

	pages  *pageCache
	router chi.Router
}

// New builds a server for cfg.Dev.Root. Nothing listens until Run.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		root:      filepath.Clean(cfg.Dev.Root),
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Local previews are opened from any host name.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pages: newPageCache(),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get(ReloadPath, s.handleWebSocket)
	r.Post(s.cfg.Dev.ContactPath, s.handleContact)
	r.Get("/wasm_exec.js", s.serveWasmExec)
	r.Get("/favicon.ico", s.serveFavicon)
	r.Get("/*", s.serveStatic)

	return r
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// requestLogger logs one line per request with its id and outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Watch(ctx); err != nil {
		s.logger.Warn("file watching disabled", "error", err)
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server running", "url", fmt.Sprintf("http://%s", s.cfg.Addr()), "root", s.root)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeWatcher()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down preview server")
	s.closeWatcher()
	s.closeClients()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) closeWatcher() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Server) closeClients() {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	for conn := range s.wsClients {
		conn.Close()
		delete(s.wsClients, conn)
	}
}
