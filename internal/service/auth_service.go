package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials marks a failed login. The message is what the caller
// shows on the login form; the session stays anonymous.
var ErrBadCredentials = errors.New("invalid email or password")

const sessionTokenLength = 32

// authService is the concrete implementation of AuthService
type authService struct {
	admins repository.AdminRepository
	cfg    *config.AuthConfig
	log    zerolog.Logger
}

func newAuthService(admins repository.AdminRepository, cfg *config.AuthConfig, log zerolog.Logger) AuthService {
	return &authService{
		admins: admins,
		cfg:    cfg,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// EnsureAdmin provisions the admin account configured through the
// environment. Without one the login flow has no account to check against,
// so an unset pair is logged loudly. Existing accounts are left untouched;
// rotating the password means deleting the row first.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set; no admin account provisioned")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	inserted, err := s.admins.UpsertAdmin(ctx, &models.AdminUser{
		ID:           uuid.New().String(),
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("provisioning admin account: %w", err)
	}

	if inserted {
		s.log.Info().Str("email", s.cfg.AdminEmail).Msg("Admin account created")
	} else {
		s.log.Debug().Str("email", s.cfg.AdminEmail).Msg("Admin account already present")
	}
	return nil
}

// Login checks credentials and establishes a server-side session. A login
// while already authenticated simply issues a fresh session.
func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		s.log.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, ErrBadCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	session := &models.Session{
		Token:     token,
		AdminID:   admin.ID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.admins.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("Admin logged in")
	return session, nil
}

// Logout tears down the session unconditionally. Unknown tokens are not an
// error; the end state is Anonymous either way.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.admins.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its admin account. Expired or
// unknown tokens return ErrNotFound.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.AdminUser, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	session, err := s.admins.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, repository.ErrNotFound
	}
	return s.admins.GetAdminByID(ctx, session.AdminID)
}

// PurgeExpiredSessions deletes sessions past their TTL. Reads already
// filter expiry, so this only reclaims storage.
func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.admins.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("purging expired sessions: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("deleted", n).Msg("Expired sessions purged")
	}
	return n, nil
}

func generateSessionToken() (string, error) {
	tokenBytes := make([]byte, sessionTokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}
