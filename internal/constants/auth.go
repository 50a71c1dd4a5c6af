package constants

import "time"

// User roles
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Password hashing (PBKDF2-SHA512)
const (
	AuthPBKDF2Iterations = 100000
	AuthPBKDF2SaltBytes  = 16
	AuthPBKDF2KeyBytes   = 64
)

// Login policy
const (
	AuthMinPasswordLength   = 8
	AuthMaxPasswordLength   = 128
	AuthMaxLoginAttempts    = 5
	AuthLockoutDurationMins = 15
)

// Session tokens (stateless, signed)
const (
	AuthAccessTokenDuration  = 8 * time.Hour
	AuthRefreshTokenDuration = 7 * 24 * time.Hour
	AuthMinJWTSecretLength   = 32
)

// Session cookies
const (
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// Refresh token claim marker
const (
	AuthTokenTypeRefresh = "refresh"
)

// Bootstrap admin account defaults
const (
	AuthBootstrapEmail    = "admin@genovault.local"
	AuthBootstrapName     = "Administrator"
	AuthPasswordGenLength = 24
)

// Context/forwarding headers for downstream handlers
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)
