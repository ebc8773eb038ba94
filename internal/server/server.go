package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/game"
	"github.com/lukee-d/friendify/internal/repositories"
	"github.com/lukee-d/friendify/internal/services"
	"github.com/lukee-d/friendify/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, panic recovery, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the Friendify web app.
// Implementations handle related endpoint groups (auth, tracks, solo game, lobbies).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Server wires the Spotify service, game registry, and repositories into the
// HTTP route table.
type Server struct {
	config    *shared.Config
	service   services.Service
	registry  *game.Registry
	snapshots *repositories.SnapshotRepository
	sessions  *SessionManager
	views     *Views
	router    *BasicRouter
	logger    *log.Logger
}

// New builds a fully-routed Server. It fails only when the embedded templates
// do not parse.
func New(config *shared.Config, service services.Service, registry *game.Registry, snapshots *repositories.SnapshotRepository, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	views, err := NewViews()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    config,
		service:   service,
		registry:  registry,
		snapshots: snapshots,
		sessions:  NewSessionManager(config.Server.SessionSecret),
		views:     views,
		router:    NewBasicRouter(),
		logger:    logger,
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(Recover(s.logger), RequestLogger(s.logger))

	guard := RequireAuth(s.sessions)

	// Each handler group logs under its own component key.
	s.router.Handler(NewAuthHandler(s.service, s.sessions, s.views, shared.WithLogger(s.logger, "component", "auth")))
	s.router.Handler(Protect(NewTrackHandler(s.service, s.sessions, s.snapshots, s.config.Game, s.views, shared.WithLogger(s.logger, "component", "tracks")), guard))
	s.router.Handler(Protect(NewSoloHandler(s.registry, s.sessions, s.views, shared.WithLogger(s.logger, "component", "solo")), guard))
	s.router.Handler(Protect(NewLobbyHandler(s.registry, s.sessions, s.views, shared.WithLogger(s.logger, "component", "lobby")), guard))
}

// ServeHTTP implements [http.Handler] for the whole application.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
