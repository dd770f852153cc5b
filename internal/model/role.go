package model

// The only role names this subsystem ever creates. Compared case-sensitively.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Role mirrors the 'roles' table. Name is unique.
type Role struct {
	ID   uint64
	Name string
}

// RoleAssignment links one account to one role. An account holds at most
// one active assignment; lookups consult only the first row by design.
type RoleAssignment struct {
	ID        uint64
	AccountID uint64
	RoleID    uint64
}
