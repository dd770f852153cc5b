// Package model defines the entities persisted by the credential store.
package model

import "time"

// Account mirrors the 'users' table. Email is stored lower-cased and is
// unique at the database level; PasswordHash is a bcrypt digest and never
// leaves the server.
type Account struct {
	ID           uint64
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
