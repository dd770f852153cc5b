// Package auth implements the credential issuance and rotation subsystem:
// account registration with role bootstrap, password sign-in producing a
// signed access token, and single-use refresh token rotation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/authgate/authgate/internal/model"
	"github.com/authgate/authgate/internal/queue"
	"github.com/authgate/authgate/internal/repository"
	"github.com/authgate/authgate/internal/utils"
)

// TokenPolicy carries the signing parameters and hashing cost. It is passed
// explicitly into the token helpers on every call; the service keeps no
// ambient signing state.
type TokenPolicy struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	BcryptCost int
}

// RegisterRequest is the input of Register.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the input of SignIn.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Confirmation is the outcome of a registration. It never carries the
// password or its hash.
type Confirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Session is the outcome of SignIn and Refresh: a signed access token plus
// the opaque refresh token that can later be exchanged for a new pair.
type Session struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// EventPublisher receives best-effort domain events. Implementations must
// not fail the calling request; errors are theirs to log.
type EventPublisher interface {
	AccountRegistered(ctx context.Context, ev queue.AccountRegisteredEvent)
}

// Service orchestrates the credential store, the password hasher and the
// token helpers. All operations are safe for concurrent use; shared state
// lives in the store only.
type Service struct {
	accounts AccountStore
	roles    RoleStore
	tokens   RefreshTokenStore
	policy   TokenPolicy
	events   EventPublisher // optional
}

// NewService constructs the auth service. events may be nil.
func NewService(accounts AccountStore, roles RoleStore, tokens RefreshTokenStore, policy TokenPolicy, events EventPublisher) *Service {
	return &Service{accounts: accounts, roles: roles, tokens: tokens, policy: policy, events: events}
}

// Register creates an account and applies the role bootstrap policy: the
// first account ever registered becomes Admin, every later one gets the
// shared User role. Emails are unique case-insensitively.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (Confirmation, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return Confirmation{}, ErrEmptyInput
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.accounts.FindAccountByEmail(ctx, email); err == nil {
		return Confirmation{}, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Confirmation{}, fmt.Errorf("check email: %w", err)
	}

	hash, err := utils.HashPassword(req.Password, s.policy.BcryptCost)
	if err != nil {
		return Confirmation{}, fmt.Errorf("hash password: %w", err)
	}
	acc := &model.Account{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
	}
	id, err := s.accounts.CreateAccount(ctx, acc)
	if err != nil {
		// The unique email key catches registrations that raced past the
		// pre-check; report them exactly like the pre-check would.
		if errors.Is(err, repository.ErrEmailExists) {
			return Confirmation{}, ErrAlreadyRegistered
		}
		return Confirmation{}, fmt.Errorf("create account: %w", err)
	}
	acc.ID = id

	roleName, err := s.bootstrapRole(ctx, id)
	if err != nil {
		return Confirmation{}, fmt.Errorf("assign role: %w", err)
	}

	if s.events != nil {
		s.events.AccountRegistered(ctx, queue.AccountRegisteredEvent{
			AccountID:    id,
			FullName:     acc.FullName,
			Email:        acc.Email,
			Role:         roleName,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return Confirmation{Success: true, Message: "account created"}, nil
}

// bootstrapRole creates roles lazily and returns the name assigned. The
// second branch creates the User role (the system it replaces created a
// second Admin here; see DESIGN.md).
func (s *Service) bootstrapRole(ctx context.Context, accountID uint64) (string, error) {
	_, err := s.roles.FindRoleByName(ctx, model.RoleAdmin)
	if errors.Is(err, repository.ErrNotFound) {
		admin, err := s.roles.CreateRole(ctx, model.RoleAdmin)
		if err != nil {
			return "", err
		}
		return model.RoleAdmin, s.roles.CreateRoleAssignment(ctx, accountID, admin.ID)
	}
	if err != nil {
		return "", err
	}

	role, err := s.roles.FindRoleByName(ctx, model.RoleUser)
	if errors.Is(err, repository.ErrNotFound) {
		role, err = s.roles.CreateRole(ctx, model.RoleUser)
	}
	if err != nil {
		return "", err
	}
	return model.RoleUser, s.roles.CreateRoleAssignment(ctx, accountID, role.ID)
}

// SignIn verifies the password and, on success, issues an access token and
// stores a fresh refresh token in the account's slot.
func (s *Service) SignIn(ctx context.Context, creds *Credentials) (Session, error) {
	if creds == nil || strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return Session{}, ErrEmptyInput
	}
	acc, err := s.accounts.FindAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrAccountNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find account: %w", err)
	}
	if !utils.VerifyPassword(acc.PasswordHash, creds.Password) {
		return Session{}, ErrInvalidCredentials
	}
	roleName, err := s.roleName(ctx, acc.ID)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, acc, roleName, "login successful")
}

// Refresh exchanges a previously issued refresh token for a new token pair
// and rotates the slot. The presented token stops matching the moment the
// new one is stored; replaying it yields ErrTokenNotFound.
func (s *Service) Refresh(ctx context.Context, rawToken string) (Session, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Session{}, ErrEmptyInput
	}
	rec, err := s.tokens.FindRefreshToken(ctx, utils.HashRefreshRaw(rawToken))
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrTokenNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find refresh token: %w", err)
	}
	acc, err := s.accounts.FindAccountByID(ctx, rec.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrAccountNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find account: %w", err)
	}
	// The claim set is re-derived from the account's actual assignment,
	// identically to SignIn.
	roleName, err := s.roleName(ctx, acc.ID)
	if err != nil {
		return Session{}, err
	}
	// The slot must still belong to this account; if it vanished between
	// lookup and rotation the account is no longer signed in.
	if _, err := s.tokens.FindRefreshTokenByAccount(ctx, acc.ID); errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrNotSignedIn
	} else if err != nil {
		return Session{}, fmt.Errorf("find refresh slot: %w", err)
	}
	return s.issueSession(ctx, acc, roleName, "token refreshed")
}

// roleName resolves the account's role through its single assignment. A
// missing assignment or a dangling role id are both the unauthorized state.
func (s *Service) roleName(ctx context.Context, accountID uint64) (string, error) {
	ra, err := s.roles.FindRoleAssignment(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrRoleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find role assignment: %w", err)
	}
	role, err := s.roles.FindRoleByID(ctx, ra.RoleID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrRoleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find role: %w", err)
	}
	return role.Name, nil
}

// issueSession signs the access token, generates a new opaque refresh token
// and overwrites the account's refresh slot. Claims and signature are never
// persisted; only the refresh token hash is durable state.
func (s *Service) issueSession(ctx context.Context, acc model.Account, roleName, msg string) (Session, error) {
	access, err := utils.NewAccessToken(s.policy.Secret, s.policy.Issuer, s.policy.Audience, utils.TokenClaims{
		AccountID: acc.ID,
		FullName:  acc.FullName,
		Email:     acc.Email,
		Role:      roleName,
	}, s.policy.AccessTTL)
	if err != nil {
		return Session{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokens.UpsertRefreshToken(ctx, acc.ID, utils.HashRefreshRaw(refresh)); err != nil {
		return Session{}, fmt.Errorf("store refresh token: %w", err)
	}
	return Session{
		Success:      true,
		Message:      msg,
		AccessToken:  access.Token,
		RefreshToken: refresh,
	}, nil
}
