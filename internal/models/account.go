package models

import "time"

// AccountStatus is the persisted account lifecycle state. LOCKED is a
// denormalized mirror of the failed-attempt counter; the counter is the
// source of truth for the lockout decision.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusLocked   AccountStatus = "LOCKED"
)

// LockoutThreshold is the failed-attempt count at which an account is
// automatically locked.
const LockoutThreshold = 3

// Account is a staff login identity with a role and lockout state.
type Account struct {
	ID                  int64
	Username            string
	PasswordHash        string
	Email               string
	FullName            string
	Role                Role
	Status              AccountStatus
	FailedLoginAttempts int
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Locked reports whether the account may not authenticate. The counter
// decides; status is checked as well so a manually locked account stays
// locked even with a stale counter.
func (a *Account) Locked() bool {
	return a.FailedLoginAttempts >= LockoutThreshold || a.Status == StatusLocked
}

// Scrubbed returns a copy with the password hash removed, safe to hand
// to callers outside the credential verifier.
func (a *Account) Scrubbed() *Account {
	c := *a
	c.PasswordHash = ""
	return &c
}
