package services

import (
	"strings"
	"time"

	"genovault/internal/audit"
	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/logger"
	"genovault/internal/reports"
	"genovault/internal/share"
)

// ShareService manages the share-link lifecycle: create, list, revoke, and
// the guarded access path used by the public viewer.
type ShareService struct {
	shares  *share.Store
	reports *reports.Store
	codec   *share.TokenCodec
	audit   *audit.Logger
	log     *logger.Logger
	cfg     *config.Config
}

// NewShareService creates the share service.
func NewShareService(shares *share.Store, reportStore *reports.Store, codec *share.TokenCodec, auditLog *audit.Logger, log *logger.Logger, cfg *config.Config) *ShareService {
	return &ShareService{
		shares:  shares,
		reports: reportStore,
		codec:   codec,
		audit:   auditLog,
		log:     log,
		cfg:     cfg,
	}
}

// CreateInput holds the parameters for a new share link.
type CreateInput struct {
	ReportID      string
	PatientID     string
	Password      string
	ExpiresInDays *int
	MaxViews      *int
	CreatedBy     *string
}

// CreateResult describes a newly created share link. It is serialized as
// the shareToken object of the create response.
type CreateResult struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Token       string `json:"token"`
	ExpiresAt   *int64 `json:"expiresAt"`
	MaxViews    *int   `json:"maxViews"`
	HasPassword bool   `json:"hasPassword"`
	CreatedAt   int64  `json:"createdAt"`
	Message     string `json:"message"`
}

// Create issues a new share link after verifying the report belongs to the
// patient.
func (s *ShareService) Create(input CreateInput, ipAddress string) (*CreateResult, error) {
	if input.ReportID == "" {
		return nil, ErrMissingParamWithName("reportId")
	}
	if input.PatientID == "" {
		return nil, ErrMissingParamWithName("patientId")
	}

	exists, owned, err := s.reports.ReportBelongsToPatient(input.ReportID, input.PatientID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if !exists || !owned {
		return nil, ErrReportNotFound
	}

	token, err := s.codec.CreateShareToken(input.ReportID, input.PatientID)
	if err != nil {
		return nil, WrapInternalError(err)
	}

	var passwordHash *string
	password := strings.TrimSpace(input.Password)
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, WrapInternalError(err)
		}
		passwordHash = &hash
	}

	var expiresAt *int64
	if input.ExpiresInDays != nil && *input.ExpiresInDays > 0 {
		ts := time.Now().AddDate(0, 0, *input.ExpiresInDays).Unix()
		expiresAt = &ts
	}

	var maxViews *int
	if input.MaxViews != nil && *input.MaxViews > 0 {
		maxViews = input.MaxViews
	}

	row, err := s.shares.Create(share.CreateParams{
		Token:        token,
		ReportID:     input.ReportID,
		PatientID:    input.PatientID,
		PasswordHash: passwordHash,
		ExpiresAt:    expiresAt,
		MaxViews:     maxViews,
		CreatedBy:    input.CreatedBy,
	})
	if err != nil {
		return nil, WrapInternalError(err)
	}

	details := audit.ShareCreatedDetails{
		ShareID:     row.ID,
		ReportID:    row.ReportID,
		PatientID:   row.PatientID,
		HasPassword: passwordHash != nil,
		HasExpiry:   expiresAt != nil,
	}
	if maxViews != nil {
		details.MaxViews = *maxViews
	}
	email := ""
	if input.CreatedBy != nil {
		email = *input.CreatedBy
	}
	if err := s.audit.Log(constants.AuditActionShareCreated, ipAddress, email, details); err != nil {
		s.log.Warn("Audit: failed to record share_created: %v", err)
	}

	message := constants.ShareMsgPublic
	if passwordHash != nil {
		message = constants.ShareMsgPasswordProtected
	}

	return &CreateResult{
		ID:          row.ID,
		URL:         s.cfg.BaseURL + constants.SharedReportPathPrefix + token,
		Token:       token,
		ExpiresAt:   expiresAt,
		MaxViews:    maxViews,
		HasPassword: passwordHash != nil,
		CreatedAt:   row.CreatedAt,
		Message:     message,
	}, nil
}

// ListItem is one row of a share-link listing, annotated with liveness.
type ListItem struct {
	ID                string `json:"id"`
	Token             string `json:"token"`
	URL               string `json:"url"`
	ReportID          string `json:"reportId"`
	PatientID         string `json:"patientId"`
	ExpiresAt         *int64 `json:"expiresAt"`
	MaxViews          *int   `json:"maxViews"`
	ViewCount         int    `json:"viewCount"`
	CreatedAt         int64  `json:"createdAt"`
	LastAccessedAt    *int64 `json:"lastAccessedAt"`
	HasPassword       bool   `json:"hasPassword"`
	IsExpired         bool   `json:"isExpired"`
	IsMaxViewsReached bool   `json:"isMaxViewsReached"`
}

// List returns active share links filtered by report or patient. Exactly
// one filter is required.
func (s *ShareService) List(reportID, patientID string) ([]ListItem, error) {
	var rows []*share.Token
	var err error

	switch {
	case reportID != "":
		rows, err = s.shares.ListByReport(reportID)
	case patientID != "":
		rows, err = s.shares.ListByPatient(patientID)
	default:
		return nil, ErrMissingParamWithName("reportId or patientId")
	}
	if err != nil {
		return nil, WrapInternalError(err)
	}

	now := time.Now().Unix()
	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItem{
			ID:                row.ID,
			Token:             row.Token,
			URL:               s.cfg.BaseURL + constants.SharedReportPathPrefix + row.Token,
			ReportID:          row.ReportID,
			PatientID:         row.PatientID,
			ExpiresAt:         row.ExpiresAt,
			MaxViews:          row.MaxViews,
			ViewCount:         row.ViewCount,
			CreatedAt:         row.CreatedAt,
			LastAccessedAt:    row.LastAccessedAt,
			HasPassword:       row.HasPassword(),
			IsExpired:         row.IsExpired(now),
			IsMaxViewsReached: row.IsMaxViewsReached(),
		})
	}
	return items, nil
}

// Revoke deactivates a share link by id. Revocation is permanent and
// idempotent.
func (s *ShareService) Revoke(shareID string, identity *auth.Identity, ipAddress string) error {
	if shareID == "" {
		return ErrMissingParamWithName("tokenId")
	}

	row, err := s.shares.GetByID(shareID)
	if err != nil {
		return WrapInternalError(err)
	}
	if row == nil {
		return ErrShareNotFound
	}

	if _, err := s.shares.Revoke(shareID); err != nil {
		return WrapInternalError(err)
	}

	email := ""
	if identity != nil {
		email = identity.Email
	}
	if err := s.audit.Log(constants.AuditActionShareRevoked, ipAddress, email, audit.ShareRevokedDetails{
		ShareID:  row.ID,
		ReportID: row.ReportID,
	}); err != nil {
		s.log.Warn("Audit: failed to record share_revoked: %v", err)
	}

	return nil
}

// ShareInfo is the liveness block returned alongside an accessed report.
type ShareInfo struct {
	ViewCount  int    `json:"viewCount"`
	MaxViews   *int   `json:"maxViews"`
	ExpiresAt  *int64 `json:"expiresAt"`
	IsReadOnly bool   `json:"isReadOnly"`
}

// AccessResult is the response payload for a successful shared access.
type AccessResult struct {
	Report    *reports.View `json:"report"`
	ShareInfo ShareInfo     `json:"shareInfo"`
}

// Access runs the guarded access state machine for a share token. Checks
// short-circuit in a fixed order: unknown token, revoked, expired, view
// allowance (checked before the increment so the last permitted view is
// exactly the max), then the password gate. Only a fully passed gate counts
// as a view.
func (s *ShareService) Access(token, password, ipAddress, userAgent string) (*AccessResult, error) {
	if token == "" {
		return nil, ErrMissingParamWithName("token")
	}

	row, err := s.shares.GetByToken(token)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if row == nil {
		return nil, ErrShareNotFound
	}

	if !row.IsActive {
		return nil, ErrShareRevoked
	}

	now := time.Now().Unix()
	if row.IsExpired(now) {
		return nil, ErrShareExpired
	}

	if row.IsMaxViewsReached() {
		return nil, NewServiceError(constants.ErrCodeShareExpired,
			"This share link has reached its maximum number of views")
	}

	if row.HasPassword() {
		if password == "" {
			return nil, ErrSharePasswordMissing
		}
		if !auth.VerifyPassword(password, *row.PasswordHash) {
			return nil, ErrSharePasswordInvalid
		}
	}

	viewCount, err := s.shares.RecordAccess(row.ID)
	if err != nil {
		return nil, WrapInternalError(err)
	}

	bundle, err := s.reports.LoadBundle(row.ReportID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if bundle == nil {
		return nil, ErrReportNotFound
	}

	if err := s.audit.Log(constants.AuditActionShareAccessed, ipAddress, "", audit.ShareAccessedDetails{
		ShareID:   row.ID,
		ReportID:  row.ReportID,
		ViewCount: viewCount,
		UserAgent: userAgent,
	}); err != nil {
		s.log.Warn("Audit: failed to record share_accessed: %v", err)
	}

	return &AccessResult{
		Report: reports.Transform(bundle),
		ShareInfo: ShareInfo{
			ViewCount:  viewCount,
			MaxViews:   row.MaxViews,
			ExpiresAt:  row.ExpiresAt,
			IsReadOnly: true,
		},
	}, nil
}
