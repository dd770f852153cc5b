package auth

import "errors"

// Expected, recoverable outcomes of the credential operations. The service
// returns them untouched and the HTTP layer maps each to a status code and
// message.
var (
	ErrEmptyInput         = errors.New("request is empty")
	ErrAlreadyRegistered  = errors.New("email is registered already")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("email or password not valid")
	ErrRoleNotFound       = errors.New("account role not found")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrNotSignedIn        = errors.New("account has not signed in")
)
