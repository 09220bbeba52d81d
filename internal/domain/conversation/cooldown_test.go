package conversation

import (
	"testing"
	"time"
)

func TestCooldownFor(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		status       Status
		wantCooldown bool
		wantDuration time.Duration
	}{
		{
			name:         "rejected carries ten minute cooldown",
			status:       StatusRejected,
			wantCooldown: true,
			wantDuration: 10 * time.Minute,
		},
		{
			name:         "ended carries five minute cooldown",
			status:       StatusEnded,
			wantCooldown: true,
			wantDuration: 5 * time.Minute,
		},
		{
			name:   "pending carries no cooldown",
			status: StatusPending,
		},
		{
			name:   "approved carries no cooldown",
			status: StatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, ok := CooldownFor(tt.status, started)
			if ok != tt.wantCooldown {
				t.Fatalf("CooldownFor(%s) ok = %v, want %v", tt.status, ok, tt.wantCooldown)
			}
			if !ok {
				return
			}
			if policy.Duration != tt.wantDuration {
				t.Errorf("duration = %v, want %v", policy.Duration, tt.wantDuration)
			}
			if !policy.StartedAt.Equal(started) {
				t.Errorf("started at = %v, want %v", policy.StartedAt, started)
			}
		})
	}
}

func TestCooldownPolicyRemaining(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := CooldownPolicy{Status: StatusRejected, StartedAt: started, Duration: 10 * time.Minute}

	tests := []struct {
		name          string
		now           time.Time
		wantRemaining time.Duration
		wantActive    bool
	}{
		{
			name:          "at start the full duration remains",
			now:           started,
			wantRemaining: 10 * time.Minute,
			wantActive:    true,
		},
		{
			name:          "halfway through",
			now:           started.Add(5 * time.Minute),
			wantRemaining: 5 * time.Minute,
			wantActive:    true,
		},
		{
			name:          "exactly at expiry",
			now:           started.Add(10 * time.Minute),
			wantRemaining: 0,
			wantActive:    false,
		},
		{
			name:          "long after expiry remaining is clamped to zero",
			now:           started.Add(3 * time.Hour),
			wantRemaining: 0,
			wantActive:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.Remaining(tt.now); got != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", got, tt.wantRemaining)
			}
			if got := policy.Active(tt.now); got != tt.wantActive {
				t.Errorf("Active = %v, want %v", got, tt.wantActive)
			}
		})
	}
}

// Remaining is recomputed from the persisted start instant, so two
// policies rebuilt from the same stored row always agree.
func TestCooldownPolicySurvivesReload(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := started.Add(7 * time.Minute)

	first, _ := CooldownFor(StatusRejected, started)
	reloaded, _ := CooldownFor(StatusRejected, started)

	if first.Remaining(now) != reloaded.Remaining(now) {
		t.Fatalf("remaining diverged: %v vs %v", first.Remaining(now), reloaded.Remaining(now))
	}
	if want := 3 * time.Minute; first.Remaining(now) != want {
		t.Errorf("Remaining = %v, want %v", first.Remaining(now), want)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusEnded, true},
		{StatusApproved, StatusEnded, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusEnded, StatusApproved, false},
		{StatusEnded, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusEnded, false},
		{StatusFAQChat, StatusApproved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.ok {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}
