package audit

import "time"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeDenied  Outcome = "denied"
)

const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionSessionCreated = "session_created"
	ActionLockout        = "lockout"
)

// Event is one entry in the authentication audit trail. Actor is the
// email the attempt was made for, whether or not it exists.
type Event struct {
	ID         int64                  `json:"id"`
	Actor      string                 `json:"actor"`
	Action     string                 `json:"action"`
	Outcome    Outcome                `json:"outcome"`
	RemoteAddr string                 `json:"remote_addr"`
	Tags       []string               `json:"tags"`
	Fields     map[string]interface{} `json:"fields"`
	Timestamp  time.Time              `json:"timestamp"`
	CreatedAt  time.Time              `json:"created_at"`
}

type Filter struct {
	Actor   string
	Action  string
	Outcome Outcome
	Tag     string
	Since   time.Time
	Until   time.Time
	Limit   int
}
