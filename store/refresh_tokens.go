package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/miposta/citas-backend/models"
)

func (s *Store) GuardarRefreshToken(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at, created_at, is_revoked)
		 VALUES ($1,$2,$3,$4,false)`,
		userID, tokenHash, expiresAt, time.Now())
	return err
}

func (s *Store) RefreshTokenPorHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	t := &models.RefreshToken{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, created_at, is_revoked
		 FROM refresh_tokens WHERE token = $1`, tokenHash,
	).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt, &t.IsRevoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) RevocarRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = true WHERE token = $1`, tokenHash)
	return err
}

func (s *Store) RevocarRefreshTokensDeUsuario(ctx context.Context, userID int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = true WHERE user_id = $1`, userID)
	return err
}
