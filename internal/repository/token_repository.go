package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/authgate/authgate/internal/model"
)

// TokenRepo persists refresh tokens: one live slot per account, keyed by
// UNIQUE(user_id). Rotation is an upsert that overwrites token_hash in
// place, so the previously issued token stops matching immediately.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// FindRefreshToken returns the record whose stored hash matches. A rotated
// or unknown token misses here.
func (r *TokenRepo) FindRefreshToken(ctx context.Context, hash string) (model.RefreshTokenRecord, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, created_at, updated_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		hash))
}

// FindRefreshTokenByAccount returns the account's refresh slot, if any.
func (r *TokenRepo) FindRefreshTokenByAccount(ctx context.Context, accountID uint64) (model.RefreshTokenRecord, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, created_at, updated_at FROM refresh_tokens WHERE user_id=? LIMIT 1",
		accountID))
}

// UpsertRefreshToken stores the new token hash for the account, overwriting
// the existing slot when one exists.
func (r *TokenRepo) UpsertRefreshToken(ctx context.Context, accountID uint64, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash) VALUES (?,?) "+
			"ON DUPLICATE KEY UPDATE token_hash=VALUES(token_hash)",
		accountID, hash)
	return err
}

func (r *TokenRepo) scanOne(row *sql.Row) (model.RefreshTokenRecord, error) {
	var rec model.RefreshTokenRecord
	err := row.Scan(&rec.ID, &rec.AccountID, &rec.TokenHash, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshTokenRecord{}, ErrNotFound
	}
	return rec, err
}
