// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// AccountRegisteredQueue is the durable queue carrying registration events.
const AccountRegisteredQueue = "auth.account.registered"

// AccountRegisteredEvent is published after a successful registration. It
// carries enough for downstream consumers to audit or notify without
// querying the credential store. Password material never appears here.
type AccountRegisteredEvent struct {
	AccountID    uint64 `json:"account_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}
