package conversation

import "time"

// Cool-down durations a customer must wait before opening a new
// conversation after the previous one reached a terminal status.
const (
	RejectedCooldown = 10 * time.Minute
	EndedCooldown    = 5 * time.Minute
)

// CooldownPolicy is a value object describing the wait imposed by a
// terminal conversation. Remaining time is always recomputed from the
// persisted start instant, never counted down in memory, so the policy
// gives the same answer after any restart or reload.
type CooldownPolicy struct {
	Status    Status
	StartedAt time.Time
	Duration  time.Duration
}

// CooldownFor returns the policy imposed by a conversation in the given
// status. The second return value is false when the status carries no
// cool-down.
func CooldownFor(status Status, statusChangedAt time.Time) (CooldownPolicy, bool) {
	switch status {
	case StatusRejected:
		return CooldownPolicy{Status: status, StartedAt: statusChangedAt, Duration: RejectedCooldown}, true
	case StatusEnded:
		return CooldownPolicy{Status: status, StartedAt: statusChangedAt, Duration: EndedCooldown}, true
	default:
		return CooldownPolicy{}, false
	}
}

// Remaining returns how much of the cool-down is left at the given
// instant. Never negative.
func (p CooldownPolicy) Remaining(now time.Time) time.Duration {
	remaining := p.Duration - now.Sub(p.StartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Active reports whether the cool-down still blocks the customer.
func (p CooldownPolicy) Active(now time.Time) bool {
	return p.Remaining(now) > 0
}

// ExpiresAt returns the instant the cool-down lifts.
func (p CooldownPolicy) ExpiresAt() time.Time {
	return p.StartedAt.Add(p.Duration)
}
