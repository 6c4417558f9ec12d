package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/portfolio-backend/config"
	"github.com/devportfolio/portfolio-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer wires every handler to db. contacts may be nil, in which case
// new contacts are only stored.
func NewServer(cfg *config.Config, db *database.Database, contacts ContactObserver) Server {
	startupTime := time.Now()

	router := newRouter(initializeHandlers(db, contacts, startupTime))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout(), // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout(),  // Timeout for idle connections
	}

	return Server{server, startupTime}
}

func newRouter(handlers *routeHandlers) *chi.Mux {
	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(requestIDMiddleware)
	chiRouter.Use(requestLogger)
	chiRouter.Use(recoverMiddleware)

	// Any origin may call the API; no credentials are involved
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	setupRoutes(chiRouter, handlers)

	return chiRouter
}

// Listen binds the configured address without serving yet, so a bind
// failure can be reported before anything else starts.
func (s Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.Addr)
}

// Start serves on ln until the server is shut down.
func (s Server) Start(ln net.Listener) error {
	log.Info().Msgf("Server started on: %s", ln.Addr())
	if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down the server")
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
