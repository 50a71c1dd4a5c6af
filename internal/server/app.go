package server

import (
	"database/sql"
	"time"

	"genovault/internal/audit"
	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/logger"
	"genovault/internal/reports"
	"genovault/internal/services"
	"genovault/internal/share"
	"genovault/internal/uploads"
)

// App holds all application state and dependencies.
type App struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *sql.DB
	AuditLogger *audit.Logger
	Sessions    *auth.SessionManager
	Users       *auth.Store
	StartedAt   time.Time

	// Services layer for business logic
	Services *services.Services
}

// NewApp wires the stores and services on top of an open database.
func NewApp(cfg *config.Config, log *logger.Logger, db *sql.DB) (*App, error) {
	codec, err := share.NewTokenCodec(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}

	sessions := auth.NewSessionManager(cfg.JWTSecret,
		cfg.Auth.AccessTokenDuration(), cfg.Auth.RefreshTokenDuration(), cfg.Production)

	auditLogger := audit.NewLogger(db, cfg.Audit.MaxLogSizeBytes, cfg.Audit.PurgePercentage)
	users := auth.NewStore(db)

	app := &App{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		AuditLogger: auditLogger,
		Sessions:    sessions,
		Users:       users,
		StartedAt:   time.Now(),
	}

	app.Services = services.NewServices(services.Deps{
		Users:    users,
		Shares:   share.NewStore(db),
		Reports:  reports.NewStore(db),
		Uploads:  uploads.NewStore(config.UploadsPath(cfg.WorkingDirectory)),
		Sessions: sessions,
		Codec:    codec,
		Audit:    auditLogger,
		Logger:   log,
		Config:   cfg,
	})

	return app, nil
}

// Close stops background goroutines and releases the database.
func (a *App) Close() {
	if a.AuditLogger != nil {
		a.AuditLogger.Stop()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
