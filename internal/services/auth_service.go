package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"genovault/internal/audit"
	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/logger"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements the login state machine, logout, and session
// refresh on top of the user store and session manager.
type AuthService struct {
	users    *auth.Store
	sessions *auth.SessionManager
	audit    *audit.Logger
	log      *logger.Logger
	cfg      *config.Config
}

// NewAuthService creates the auth service.
func NewAuthService(users *auth.Store, sessions *auth.SessionManager, auditLog *audit.Logger, log *logger.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		audit:    auditLog,
		log:      log,
		cfg:      cfg,
	}
}

// LoginResult carries the authenticated user and freshly issued tokens.
type LoginResult struct {
	User         *auth.User
	AccessToken  string
	RefreshToken string
}

// Login validates credentials and enforces the lockout policy.
//
// Failure ordering is strict: unknown user and wrong password both return
// invalid-credentials (the attempt counter hint only exists for real users),
// a disabled account is reported before any password work, and an active
// lock short-circuits everything else.
func (s *AuthService) Login(email, password, ipAddress, userAgent string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, NewServiceError(constants.ErrCodeInvalidRequest, "Email and password are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, NewServiceError(constants.ErrCodeInvalidRequest, "Invalid email format")
	}
	if len(password) < constants.AuthMinPasswordLength {
		return nil, NewServiceError(constants.ErrCodeInvalidRequest,
			fmt.Sprintf("Password must be at least %d characters", constants.AuthMinPasswordLength))
	}
	if len(password) > constants.AuthMaxPasswordLength {
		return nil, NewServiceError(constants.ErrCodeInvalidRequest,
			fmt.Sprintf("Password must be at most %d characters", constants.AuthMaxPasswordLength))
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if user == nil {
		s.auditLoginFailed(email, constants.AuditReasonUserNotFound, 0, ipAddress, userAgent)
		return nil, ErrAuthInvalidCredentials
	}

	if !user.IsActive {
		s.auditLoginFailed(user.Email, constants.AuditReasonAccountInactive, 0, ipAddress, userAgent)
		return nil, ErrAuthAccountDisabled
	}

	now := time.Now().Unix()
	if user.LockedUntil != nil {
		if *user.LockedUntil > now {
			s.auditLoginFailed(user.Email, constants.AuditReasonAccountLocked, user.FailedLoginCount, ipAddress, userAgent)
			return nil, ErrAccountLockedWithMinutes(minutesUntil(*user.LockedUntil, now))
		}
		// Lock has expired: the next failure starts a fresh count
		if err := s.users.ClearExpiredLock(user.ID); err != nil {
			return nil, WrapInternalError(err)
		}
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		maxAttempts := s.cfg.Auth.MaxLoginAttempts
		count, lockedUntil, err := s.users.RecordFailedLogin(user.ID, maxAttempts, s.cfg.Auth.LockoutDuration())
		if err != nil {
			return nil, WrapInternalError(err)
		}

		s.auditLoginFailed(user.Email, constants.AuditReasonInvalidPassword, count, ipAddress, userAgent)

		if lockedUntil != nil && *lockedUntil > now {
			return nil, ErrAccountLockedWithMinutes(minutesUntil(*lockedUntil, now))
		}
		return nil, ErrInvalidCredentialsWithRemaining(maxAttempts - count)
	}

	if err := s.users.RecordSuccessfulLogin(user.ID); err != nil {
		return nil, WrapInternalError(err)
	}

	// Re-read so the result reflects the cleared counter and last_login_at
	user, err = s.users.GetUserByEmail(email)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if user == nil {
		return nil, ErrAuthInvalidCredentials
	}

	accessToken, err := s.sessions.IssueAccessToken(&user.User)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	refreshToken, err := s.sessions.IssueRefreshToken(&user.User)
	if err != nil {
		return nil, WrapInternalError(err)
	}

	if err := s.audit.Log(constants.AuditActionLoginSuccess, ipAddress, user.Email,
		audit.LoginSuccessDetails{UserAgent: userAgent}); err != nil {
		s.log.Warn("Audit: failed to record login_success: %v", err)
	}

	s.log.Info("Auth: user %s logged in from %s", user.Email, ipAddress)

	return &LoginResult{
		User:         &user.User,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout records the logout. Session invalidation is cookie clearing; the
// tokens themselves simply age out.
func (s *AuthService) Logout(identity *auth.Identity, ipAddress string) {
	email := ""
	if identity != nil {
		email = identity.Email
	}
	if err := s.audit.Log(constants.AuditActionLogout, ipAddress, email, audit.LogoutDetails{}); err != nil {
		s.log.Warn("Audit: failed to record logout: %v", err)
	}
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	claims, err := s.sessions.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrAuthSessionExpired
	}

	user, err := s.users.GetUserByID(claims.UserID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrAuthSessionExpired
	}

	accessToken, err := s.sessions.IssueAccessToken(&user.User)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	newRefresh, err := s.sessions.IssueRefreshToken(&user.User)
	if err != nil {
		return nil, WrapInternalError(err)
	}

	return &LoginResult{
		User:         &user.User,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

// CurrentUser resolves the user behind an authenticated identity.
func (s *AuthService) CurrentUser(userID string) (*auth.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if user == nil {
		return nil, ErrAuthSessionExpired
	}
	return &user.User, nil
}

func (s *AuthService) auditLoginFailed(email, reason string, attempts int, ipAddress, userAgent string) {
	err := s.audit.Log(constants.AuditActionLoginFailed, ipAddress, email, audit.LoginFailedDetails{
		AttemptedEmail: email,
		Reason:         reason,
		Attempts:       attempts,
		UserAgent:      userAgent,
	})
	if err != nil {
		s.log.Warn("Audit: failed to record login_failed: %v", err)
	}
}

// minutesUntil rounds up so "1 second left" still reads as 1 minute.
func minutesUntil(target, now int64) int {
	secs := target - now
	if secs <= 0 {
		return 0
	}
	return int((secs + 59) / 60)
}
