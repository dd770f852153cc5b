// Package repository implements the credential store on MySQL. Sentinel
// errors defined here are shared across repositories so the service layer
// can distinguish lookup misses and key conflicts with errors.Is.
package repository

import "errors"

// ErrNotFound signals a keyed lookup miss. A miss is an absent-value
// signal, not a failure; callers translate it into their own taxonomy.
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when an account insert collides with the
// unique email key (MySQL error 1062). The constraint is what closes the
// check-then-create race between concurrent registrations.
var ErrEmailExists = errors.New("email already exists")
