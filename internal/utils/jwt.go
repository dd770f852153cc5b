// Package utils provides the cryptographic helpers of the auth core:
// bcrypt password hashing, HS256 access token signing and verification,
// and opaque refresh token generation.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed JWT along with its expiry. Access tokens are
// short-lived and sent in the Authorization header; they are never stored
// server-side.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// TokenClaims is the exact claim set embedded in an access token: subject
// identifier, display name, email and role name. All four must be present
// when signing.
type TokenClaims struct {
	AccountID uint64
	FullName  string
	Email     string
	Role      string
}

// ErrIncompleteClaims reports a programmer error: the caller asked to sign
// a token before resolving every claim.
var ErrIncompleteClaims = errors.New("access token claims must all be set")

// NewAccessToken builds and signs an HS256 JWT from the claim set. Issuer,
// audience and TTL are passed explicitly so the signer holds no ambient
// state; exp is now + ttl.
func NewAccessToken(secret, issuer, audience string, cl TokenClaims, ttl time.Duration) (AccessToken, error) {
	if cl.AccountID == 0 || cl.FullName == "" || cl.Email == "" || cl.Role == "" {
		return AccessToken{}, ErrIncompleteClaims
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(cl.AccountID, 10),
		"name":  cl.FullName,
		"email": cl.Email,
		"role":  cl.Role,
		"iss":   issuer,
		"aud":   audience,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature, expiry, issuer and audience and
// returns the embedded claim set. Any verification failure is returned as
// an error; callers treat it as an invalid token, never retry.
func ParseAccessToken(secret, issuer, audience, raw string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return TokenClaims{}, err
	}
	if !tok.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("unexpected claims format")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return TokenClaims{}, fmt.Errorf("invalid sub claim: %w", err)
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return TokenClaims{AccountID: id, FullName: name, Email: email, Role: role}, nil
}
