package lockout

import "time"

// Lockout records a temporary login freeze for an account after too
// many failed attempts within the policy window.
type Lockout struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FailureCount int       `json:"failure_count"`
	EventIDs     []int64   `json:"event_ids"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
