package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrTokenUnknown is returned for refresh tokens that were never issued,
// already rotated, or revoked.
var ErrTokenUnknown = errors.New("refresh token not recognized")

// TokenStore persists issued refresh tokens so they can be rotated and
// revoked server-side.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore creates a store.
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Save records a refresh token for the user.
func (s *TokenStore) Save(ctx context.Context, email, token string, expires time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_email, token, expires_at) VALUES ($1, $2, $3)
	`, email, token, expires)
	return err
}

// Validate checks that the token is live for the user.
func (s *TokenStore) Validate(ctx context.Context, email, token string) error {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM refresh_tokens
		WHERE user_email = $1 AND token = $2 AND NOT revoked AND expires_at > NOW()
	`, email, token).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenUnknown
	}
	return nil
}

// Revoke marks one token dead; used on rotation.
func (s *TokenStore) Revoke(ctx context.Context, email, token string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE user_email = $1 AND token = $2
	`, email, token)
	return err
}

// RevokeAll kills every live token for the user; used on deactivation.
func (s *TokenStore) RevokeAll(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE user_email = $1
	`, email)
	return err
}
