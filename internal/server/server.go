package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/logger"
)

// Server wraps the HTTP server with graceful shutdown
type Server struct {
	httpServer *http.Server
	app        *App
	logger     *logger.Logger
}

// NewServer builds the router and wraps it in an http.Server.
func NewServer(app *App) *Server {
	s := &Server{
		app:    app,
		logger: app.Logger,
	}

	gate := auth.NewGate(app.Sessions, app.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(gate.Authenticate)

	s.registerRoutes(r)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.Port),
		Handler:      r,
		ReadTimeout:  constants.HTTPReadTimeout,
		WriteTimeout: constants.HTTPWriteTimeout,
		IdleTimeout:  constants.HTTPIdleTimeout,
	}

	return s
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes(r chi.Router) {
	// Auth routes
	r.Post("/api/auth/login", s.handleAuthLogin)
	r.Post("/api/auth/logout", s.handleAuthLogout)
	r.Get("/api/auth/me", s.handleAuthMe)

	// Share-link lifecycle
	r.Post("/api/share-report", s.handleShareCreate)
	r.Get("/api/share-report", s.handleShareList)
	r.Delete("/api/share-report", s.handleShareRevoke)

	// Public shared viewer access
	r.Post("/api/shared-access", s.handleSharedAccess)

	// Admin report editor surface
	r.Get("/api/patients-data", s.handlePatientsDataGet)
	r.Post("/api/patients-data", s.handlePatientsDataSave)

	// Image uploads
	r.Post("/api/upload-image", s.handleUploadSave)
	r.Get("/api/upload-image", s.handleUploadList)
	r.Delete("/api/upload-image", s.handleUploadDelete)

	// Audit log
	r.Get("/api/audit", s.handleAuditQuery)
	r.Get("/api/audit/actions", s.handleAuditActions)

	// Service info
	r.Get("/api/info", s.handleServiceInfo)

	// Public uploads tree
	uploadsDir := config.UploadsPath(s.app.Config.WorkingDirectory)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploadsDir))))
}

// Start runs the server and blocks until shutdown signal
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-stop:
		s.logger.Info("Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(constants.ShutdownTimeoutSecs)*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Shutdown error: %v", err)
	}

	s.app.Close()

	s.logger.Info("Server stopped")
	return nil
}

// Handler returns the HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
