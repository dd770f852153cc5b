package auth

import (
	"context"

	"github.com/authgate/authgate/internal/model"
)

// The credential store boundary. Lookups signal a miss with
// repository.ErrNotFound; a miss is an expected outcome, not a failure.
// internal/repository provides the MySQL implementations and an in-memory
// one for tests.

// AccountStore persists accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, acc *model.Account) (uint64, error)
	FindAccountByEmail(ctx context.Context, email string) (model.Account, error)
	FindAccountByID(ctx context.Context, id uint64) (model.Account, error)
}

// RoleStore persists roles and the single-assignment relation.
type RoleStore interface {
	FindRoleByName(ctx context.Context, name string) (model.Role, error)
	FindRoleByID(ctx context.Context, id uint64) (model.Role, error)
	CreateRole(ctx context.Context, name string) (model.Role, error)
	FindRoleAssignment(ctx context.Context, accountID uint64) (model.RoleAssignment, error)
	CreateRoleAssignment(ctx context.Context, accountID, roleID uint64) error
}

// RefreshTokenStore persists the one live refresh slot per account.
// UpsertRefreshToken overwrites the slot; the overwrite is the rotation.
type RefreshTokenStore interface {
	FindRefreshToken(ctx context.Context, tokenHash string) (model.RefreshTokenRecord, error)
	FindRefreshTokenByAccount(ctx context.Context, accountID uint64) (model.RefreshTokenRecord, error)
	UpsertRefreshToken(ctx context.Context, accountID uint64, tokenHash string) error
}
