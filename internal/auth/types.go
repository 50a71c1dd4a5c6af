package auth

// User represents an authenticated account. Password material lives in
// UserWithSensitive and never leaves the auth package.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	IsActive         bool   `json:"isActive"`
	IsBootstrap      bool   `json:"isBootstrap"`
	FailedLoginCount int    `json:"-"`
	LockedUntil      *int64 `json:"-"`
	LastLoginAt      *int64 `json:"lastLoginAt,omitempty"`
	CreatedAt        int64  `json:"createdAt"`
	UpdatedAt        int64  `json:"updatedAt"`
}

// UserWithSensitive includes the stored password record. Only the login
// path should ever see this.
type UserWithSensitive struct {
	User
	PasswordHash string
}

// Identity is the request-scoped view of an authenticated user, resolved
// from a session token by the gate middleware.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id.Role == "admin"
}
