package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/authgate/authgate/internal/model"
)

// MemoryStore is an in-memory credential store with the same contracts as
// the MySQL repositories, including the unique email key and single-slot
// refresh token behavior. It backs service and handler tests and has no
// place in production wiring.
type MemoryStore struct {
	mu          sync.Mutex
	seq         uint64
	accounts    map[uint64]model.Account
	roles       map[uint64]model.Role
	assignments []model.RoleAssignment
	tokens      map[uint64]model.RefreshTokenRecord // keyed by account id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[uint64]model.Account),
		roles:    make(map[uint64]model.Role),
		tokens:   make(map[uint64]model.RefreshTokenRecord),
	}
}

func (m *MemoryStore) nextID() uint64 {
	m.seq++
	return m.seq
}

// --- accounts ---

func (m *MemoryStore) CreateAccount(ctx context.Context, acc *model.Account) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(acc.Email)
	for _, a := range m.accounts {
		if a.Email == email {
			return 0, ErrEmailExists
		}
	}
	now := time.Now().UTC()
	stored := *acc
	stored.ID = m.nextID()
	stored.Email = email
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.accounts[stored.ID] = stored
	return stored.ID, nil
}

func (m *MemoryStore) FindAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == strings.ToLower(email) {
			return a, nil
		}
	}
	return model.Account{}, ErrNotFound
}

func (m *MemoryStore) FindAccountByID(ctx context.Context, id uint64) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, ErrNotFound
	}
	return a, nil
}

// DeleteAccount removes an account, leaving any refresh slot dangling. Used
// by tests to simulate a record whose owner disappeared.
func (m *MemoryStore) DeleteAccount(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
}

// --- roles ---

func (m *MemoryStore) FindRoleByName(ctx context.Context, name string) (model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findRoleByNameLocked(name)
}

func (m *MemoryStore) findRoleByNameLocked(name string) (model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return model.Role{}, ErrNotFound
}

func (m *MemoryStore) FindRoleByID(ctx context.Context, id uint64) (model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return model.Role{}, ErrNotFound
	}
	return r, nil
}

func (m *MemoryStore) CreateRole(ctx context.Context, name string) (model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, err := m.findRoleByNameLocked(name); err == nil {
		return existing, nil
	}
	role := model.Role{ID: m.nextID(), Name: name}
	m.roles[role.ID] = role
	return role, nil
}

func (m *MemoryStore) FindRoleAssignment(ctx context.Context, accountID uint64) (model.RoleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// First match only: one active assignment per account by design.
	for _, ra := range m.assignments {
		if ra.AccountID == accountID {
			return ra, nil
		}
	}
	return model.RoleAssignment{}, ErrNotFound
}

func (m *MemoryStore) CreateRoleAssignment(ctx context.Context, accountID, roleID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, model.RoleAssignment{
		ID:        m.nextID(),
		AccountID: accountID,
		RoleID:    roleID,
	})
	return nil
}

// ClearAssignments drops every role assignment. Used by tests to produce
// the findable-but-unauthorized account state.
func (m *MemoryStore) ClearAssignments() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = nil
}

// RoleCount reports how many distinct roles exist.
func (m *MemoryStore) RoleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.roles)
}

// --- refresh tokens ---

func (m *MemoryStore) FindRefreshToken(ctx context.Context, hash string) (model.RefreshTokenRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.tokens {
		if rec.TokenHash == hash {
			return rec, nil
		}
	}
	return model.RefreshTokenRecord{}, ErrNotFound
}

func (m *MemoryStore) FindRefreshTokenByAccount(ctx context.Context, accountID uint64) (model.RefreshTokenRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.tokens[accountID]
	if !ok {
		return model.RefreshTokenRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryStore) UpsertRefreshToken(ctx context.Context, accountID uint64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if rec, ok := m.tokens[accountID]; ok {
		rec.TokenHash = hash
		rec.UpdatedAt = now
		m.tokens[accountID] = rec
		return nil
	}
	m.tokens[accountID] = model.RefreshTokenRecord{
		ID:        m.nextID(),
		AccountID: accountID,
		TokenHash: hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// DropRefreshSlot removes an account's refresh slot. Used by tests to
// simulate a concurrent revocation between lookup and rotation.
func (m *MemoryStore) DropRefreshSlot(accountID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, accountID)
}
