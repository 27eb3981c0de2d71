package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

// adminRepo is the concrete implementation of AdminRepository
type adminRepo struct {
	db *database.DB
}

// NewAdminRepo creates a new admin repository
func NewAdminRepo(db *database.DB) AdminRepository {
	return &adminRepo{db: db}
}

// GetByEmail retrieves an admin account by email
func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admin_users WHERE email = $1`, email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetAdminByID retrieves an admin account by ID
func (r *adminRepo) GetAdminByID(ctx context.Context, id string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admin_users WHERE id = $1`, id,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpsertAdmin inserts the account unless its email already exists. Existing
// accounts keep their stored password hash.
func (r *adminRepo) UpsertAdmin(ctx context.Context, admin *models.AdminUser) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`, admin.ID, admin.Email, admin.PasswordHash)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// CreateSession persists a new session token
func (r *adminRepo) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, admin_id, expires_at) VALUES ($1, $2, $3)`,
		session.Token, session.AdminID, session.ExpiresAt,
	)
	return err
}

// GetSession retrieves a session by token; expired sessions are not returned
func (r *adminRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := r.db.QueryRowContext(ctx,
		`SELECT token, admin_id, created_at, expires_at FROM sessions WHERE token = $1 AND expires_at > now()`, token,
	).Scan(&session.Token, &session.AdminID, &session.CreatedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session unconditionally
func (r *adminRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteExpiredSessions removes sessions past their TTL
func (r *adminRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
