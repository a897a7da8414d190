package lockout

import (
	"context"
	"log/slog"
	"time"

	"authcore/internal/audit"
	"authcore/internal/auth"
	"authcore/internal/metrics"
)

// EventStore is the slice of the audit store the guard needs.
type EventStore interface {
	Insert(ctx context.Context, e *audit.Event) error
	List(ctx context.Context, f audit.Filter) ([]audit.Event, error)
}

// LockoutStore persists lockouts.
type LockoutStore interface {
	Create(ctx context.Context, l *Lockout) error
	ActiveFor(ctx context.Context, email string, now time.Time) (bool, error)
}

// Guard implements auth.Guard: it writes every login attempt to the
// audit trail and locks the account once failures inside the policy
// window reach the threshold.
type Guard struct {
	Policy Policy
	Store  LockoutStore
	Events EventStore
	Logger *slog.Logger

	now func() time.Time
}

func NewGuard(policy Policy, store LockoutStore, events EventStore, logger *slog.Logger) *Guard {
	return &Guard{
		Policy: policy,
		Store:  store,
		Events: events,
		Logger: logger,
		now:    time.Now,
	}
}

func (g *Guard) Check(ctx context.Context, email string) error {
	active, err := g.Store.ActiveFor(ctx, email, g.now())
	if err != nil {
		g.Logger.Error("check lockout", "err", err, "email", email)
		// Fail open: an unreachable lockout table must not take logins down.
		return nil
	}
	if active {
		return auth.ErrLockedOut
	}
	return nil
}

func (g *Guard) RecordAttempt(ctx context.Context, email, remoteAddr string, success bool) {
	now := g.now()
	outcome := audit.OutcomeFailure
	if success {
		outcome = audit.OutcomeSuccess
	}
	ev := &audit.Event{
		Actor:      email,
		Action:     audit.ActionLogin,
		Outcome:    outcome,
		RemoteAddr: remoteAddr,
		Timestamp:  now,
	}
	if err := g.Events.Insert(ctx, ev); err != nil {
		g.Logger.Error("insert audit event", "err", err, "email", email)
	}
	if success {
		return
	}
	if err := g.processFailure(ctx, email, now); err != nil {
		g.Logger.Error("process login failure", "err", err, "email", email)
	}
}

func (g *Guard) processFailure(ctx context.Context, email string, now time.Time) error {
	windowStart := now.Add(-g.Policy.Window)

	active, err := g.Store.ActiveFor(ctx, email, now)
	if err != nil {
		return err
	}
	if active {
		return nil
	}

	failures, err := g.Events.List(ctx, audit.Filter{
		Actor:   email,
		Action:  audit.ActionLogin,
		Outcome: audit.OutcomeFailure,
		Since:   windowStart,
		Limit:   g.Policy.MaxFailures + 1,
	})
	if err != nil {
		return err
	}
	if len(failures) < g.Policy.MaxFailures {
		return nil
	}

	ids := make([]int64, 0, len(failures))
	for _, f := range failures {
		ids = append(ids, f.ID)
	}
	l := &Lockout{
		Email:        email,
		FailureCount: len(failures),
		EventIDs:     ids,
		ExpiresAt:    now.Add(g.Policy.Duration),
	}
	if err := g.Store.Create(ctx, l); err != nil {
		return err
	}
	metrics.LockoutsCreated.Inc()
	g.Logger.Info("lockout created", "id", l.ID, "email", email, "failures", l.FailureCount)

	lockEv := &audit.Event{
		Actor:     email,
		Action:    audit.ActionLockout,
		Outcome:   audit.OutcomeDenied,
		Timestamp: now,
		Fields: map[string]interface{}{
			"failure_count": len(failures),
			"expires_at":    l.ExpiresAt.Format(time.RFC3339),
		},
	}
	if err := g.Events.Insert(ctx, lockEv); err != nil {
		g.Logger.Error("insert lockout audit event", "err", err, "email", email)
	}
	return nil
}
