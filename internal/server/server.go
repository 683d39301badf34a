// Package server wires the application together: database, services,
// handlers, routes, and graceful shutdown. It is the composition root:
// every dependency is assembled here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/handler"
	"github.com/rahmatd/contactbook/internal/middleware"
	sqliteRepo "github.com/rahmatd/contactbook/internal/repository/sqlite"
	"github.com/rahmatd/contactbook/internal/service"
	"github.com/rahmatd/contactbook/internal/validate"
)

// Config holds server configuration.
type Config struct {
	Port       int
	DBPath     string
	BcryptCost int // 0 selects auth.DefaultCost; tests inject the bcrypt minimum
}

// Server owns the router and the database connection; the connection is
// closed on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories → services → handlers → routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService(s.config.BcryptCost)
	validator := validate.New()

	userService := service.NewUserService(s.db, passwords, validator, s.logger)
	contactService := service.NewContactService(s.db, validator, s.logger)
	addressService := service.NewAddressService(s.db, s.db, validator, s.logger)

	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)
	addressHandler := handler.NewAddressHandler(addressService)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes: registration and login are the only endpoints
		// reachable without a session token.
		r.Post("/users", userHandler.HandleRegister)
		r.Post("/users/login", userHandler.HandleLogin)

		// Everything else sits behind the token middleware.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(s.db))

			r.Get("/users/current", userHandler.HandleCurrent)
			r.Patch("/users/current", userHandler.HandleUpdateCurrent)
			r.Delete("/users/logout", userHandler.HandleLogout)

			r.Post("/contacts", contactHandler.HandleCreate)
			r.Get("/contacts", contactHandler.HandleSearch)
			r.Get("/contacts/{contactID}", contactHandler.HandleGet)
			r.Put("/contacts/{contactID}", contactHandler.HandleUpdate)
			r.Delete("/contacts/{contactID}", contactHandler.HandleDelete)

			r.Route("/contacts/{contactID}/addresses", func(r chi.Router) {
				r.Post("/", addressHandler.HandleCreate)
				r.Get("/", addressHandler.HandleList)
				r.Get("/{addressID}", addressHandler.HandleGet)
				r.Put("/{addressID}", addressHandler.HandleUpdate)
				r.Delete("/{addressID}", addressHandler.HandleDelete)
			})
		})
	})
}

// Router exposes the assembled handler, mainly for httptest-based tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database connection. Start does this itself; Close is
// for callers that never Start (tests).
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
