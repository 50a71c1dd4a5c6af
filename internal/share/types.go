package share

// Token is a persisted share link. Revoked rows stay in the table with
// IsActive=false so revocation is auditable and irreversible by accident.
type Token struct {
	ID             string  `json:"id"`
	Token          string  `json:"token"`
	ReportID       string  `json:"reportId"`
	PatientID      string  `json:"patientId"`
	PasswordHash   *string `json:"-"`
	ExpiresAt      *int64  `json:"expiresAt"`
	MaxViews       *int    `json:"maxViews"`
	ViewCount      int     `json:"viewCount"`
	IsActive       bool    `json:"isActive"`
	CreatedBy      *string `json:"createdBy,omitempty"`
	CreatedAt      int64   `json:"createdAt"`
	LastAccessedAt *int64  `json:"lastAccessedAt"`
}

// HasPassword reports whether the link is password protected.
func (t *Token) HasPassword() bool {
	return t.PasswordHash != nil && *t.PasswordHash != ""
}

// IsExpired reports whether the link's expiry has passed as of now (unix).
func (t *Token) IsExpired(now int64) bool {
	return t.ExpiresAt != nil && *t.ExpiresAt <= now
}

// IsMaxViewsReached reports whether the view allowance is used up.
func (t *Token) IsMaxViewsReached() bool {
	return t.MaxViews != nil && t.ViewCount >= *t.MaxViews
}
