package model

import "time"

// RefreshTokenRecord is the single live refresh slot for an account. Only
// the SHA-256 hash of the opaque token is stored; rotation overwrites
// TokenHash in place, which is what invalidates the previous token.
type RefreshTokenRecord struct {
	ID        uint64
	AccountID uint64
	TokenHash string
	CreatedAt time.Time
	UpdatedAt time.Time
}
