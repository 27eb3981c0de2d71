package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/mocks"
	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/brand-site-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(repos *repository.Repositories, email, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repos.Admin.(*mocks.MockAdminRepository).Admins[email] = &models.AdminUser{
		ID:           "admin-1",
		Email:        email,
		PasswordHash: hash,
	}
}

func newBootstrapServices(email, password string) (*service.Services, *repository.Repositories) {
	repos := mocks.NewRepositories()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionTTL:    time.Hour,
			BcryptCost:    bcrypt.MinCost,
			CookieName:    "admin_session",
			AdminEmail:    email,
			AdminPassword: password,
		},
	}
	return service.NewServices(repos, cfg, zerolog.Nop()), repos
}

func TestEnsureAdminProvisionsAccount(t *testing.T) {
	services, _ := newBootstrapServices("admin@example.com", "correct-horse")
	ctx := context.Background()

	if err := services.Auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	// The provisioned account can log in with the configured password
	session, err := services.Auth.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login with provisioned account failed: %v", err)
	}
	if session.Token == "" {
		t.Error("Session token should be set")
	}
}

func TestEnsureAdminLeavesExistingAccount(t *testing.T) {
	services, repos := newBootstrapServices("admin@example.com", "rotated-password")
	seedAdmin(repos, "admin@example.com", "original-password")
	ctx := context.Background()

	if err := services.Auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	// The stored hash wins; provisioning never rotates a live password
	if _, err := services.Auth.Login(ctx, "admin@example.com", "original-password"); err != nil {
		t.Errorf("Original password should still work, got %v", err)
	}
	if _, err := services.Auth.Login(ctx, "admin@example.com", "rotated-password"); !errors.Is(err, service.ErrBadCredentials) {
		t.Errorf("Configured password must not replace the stored one, got %v", err)
	}
}

func TestEnsureAdminWithoutConfigIsNoop(t *testing.T) {
	services, repos := newTestServices()

	if err := services.Auth.EnsureAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureAdmin without configuration should succeed, got %v", err)
	}
	if n := len(repos.Admin.(*mocks.MockAdminRepository).Admins); n != 0 {
		t.Errorf("No account should be provisioned, got %d", n)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	services, repos := newTestServices()
	ctx := context.Background()

	sessions := repos.Admin.(*mocks.MockAdminRepository).Sessions
	sessions["fresh"] = &models.Session{Token: "fresh", AdminID: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}
	sessions["stale"] = &models.Session{Token: "stale", AdminID: "admin-1", ExpiresAt: time.Now().Add(-time.Hour)}

	n, err := services.Auth.PurgeExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("PurgeExpiredSessions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 purged session, got %d", n)
	}
	if _, ok := sessions["fresh"]; !ok {
		t.Error("Live session must survive the purge")
	}
	if _, ok := sessions["stale"]; ok {
		t.Error("Expired session should be gone")
	}
}

func TestLoginSuccess(t *testing.T) {
	services, repos := newTestServices()
	seedAdmin(repos, "admin@example.com", "correct-horse")

	session, err := services.Auth.Login(context.Background(), "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token == "" {
		t.Error("Session token should be set")
	}
	if session.AdminID != "admin-1" {
		t.Errorf("Unexpected admin id: %q", session.AdminID)
	}

	// Anonymous -> Authenticated: the token now resolves to the admin
	admin, err := services.Auth.Authenticate(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("Unexpected admin: %q", admin.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	services, repos := newTestServices()
	seedAdmin(repos, "admin@example.com", "correct-horse")

	_, err := services.Auth.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, service.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	services, _ := newTestServices()

	_, err := services.Auth.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, service.ErrBadCredentials) {
		t.Errorf("Expected ErrBadCredentials, got %v", err)
	}
}

func TestLoginTwiceIssuesFreshSession(t *testing.T) {
	services, repos := newTestServices()
	seedAdmin(repos, "admin@example.com", "correct-horse")
	ctx := context.Background()

	first, err := services.Auth.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("First login failed: %v", err)
	}
	second, err := services.Auth.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Second login failed: %v", err)
	}
	if first.Token == second.Token {
		t.Error("Re-login should issue a fresh token")
	}

	// Both sessions authenticate; re-login is idempotent on the state
	if _, err := services.Auth.Authenticate(ctx, first.Token); err != nil {
		t.Errorf("First session should still be valid: %v", err)
	}
	if _, err := services.Auth.Authenticate(ctx, second.Token); err != nil {
		t.Errorf("Second session should be valid: %v", err)
	}
}

func TestLogoutTransitionsToAnonymous(t *testing.T) {
	services, repos := newTestServices()
	seedAdmin(repos, "admin@example.com", "correct-horse")
	ctx := context.Background()

	session, err := services.Auth.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := services.Auth.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// Authenticated -> Anonymous: the token no longer resolves
	_, err = services.Auth.Authenticate(ctx, session.Token)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after logout, got %v", err)
	}
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	services, _ := newTestServices()

	if err := services.Auth.Logout(context.Background(), "never-issued"); err != nil {
		t.Errorf("Logout of unknown token should succeed, got %v", err)
	}
	if err := services.Auth.Logout(context.Background(), ""); err != nil {
		t.Errorf("Logout with empty token should succeed, got %v", err)
	}
}

func TestAuthenticateEmptyToken(t *testing.T) {
	services, _ := newTestServices()

	_, err := services.Auth.Authenticate(context.Background(), "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
