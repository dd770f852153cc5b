package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/model"
)

func TestMemoryStoreUniqueEmail(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.CreateAccount(ctx, &model.Account{FullName: "Alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = m.CreateAccount(ctx, &model.Account{FullName: "Dup", Email: "A@X.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestMemoryStoreRefreshSlotOverwrite(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.UpsertRefreshToken(ctx, 1, "hash-one"))
	require.NoError(t, m.UpsertRefreshToken(ctx, 1, "hash-two"))

	// The old hash stopped matching the moment the new one landed.
	_, err := m.FindRefreshToken(ctx, "hash-one")
	assert.ErrorIs(t, err, ErrNotFound)

	rec, err := m.FindRefreshToken(ctx, "hash-two")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.AccountID)

	byAccount, err := m.FindRefreshTokenByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byAccount.ID)
}

func TestMemoryStoreFirstAssignmentWins(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	admin, err := m.CreateRole(ctx, model.RoleAdmin)
	require.NoError(t, err)
	user, err := m.CreateRole(ctx, model.RoleUser)
	require.NoError(t, err)

	require.NoError(t, m.CreateRoleAssignment(ctx, 1, admin.ID))
	require.NoError(t, m.CreateRoleAssignment(ctx, 1, user.ID))

	ra, err := m.FindRoleAssignment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, ra.RoleID, "only the first assignment is consulted")
}
