package services

import (
	"genovault/internal/audit"
	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/logger"
	"genovault/internal/reports"
	"genovault/internal/share"
	"genovault/internal/uploads"
)

// Services bundles the business-logic layer handed to the HTTP server.
type Services struct {
	Auth   *AuthService
	Share  *ShareService
	Report *ReportService
	Upload *UploadService
}

// Deps are the shared dependencies the services are built from.
type Deps struct {
	Users    *auth.Store
	Shares   *share.Store
	Reports  *reports.Store
	Uploads  *uploads.Store
	Sessions *auth.SessionManager
	Codec    *share.TokenCodec
	Audit    *audit.Logger
	Logger   *logger.Logger
	Config   *config.Config
}

// NewServices wires up the full services layer.
func NewServices(d Deps) *Services {
	return &Services{
		Auth:   NewAuthService(d.Users, d.Sessions, d.Audit, d.Logger, d.Config),
		Share:  NewShareService(d.Shares, d.Reports, d.Codec, d.Audit, d.Logger, d.Config),
		Report: NewReportService(d.Reports, d.Logger),
		Upload: NewUploadService(d.Uploads, d.Logger),
	}
}
