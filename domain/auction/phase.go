package auction

import "time"

// Phase is the derived lifecycle state. Timestamps are the single source of
// truth; any stored phase is advisory and can lag after an extension.
type Phase string

const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseLive      Phase = "live"
	PhaseCompleted Phase = "completed"
)

// PhaseAt computes the phase of the [start, end) bidding window at `now`.
// Transitions are one-directional; an extension only moves `end` forward.
func PhaseAt(now, start, end time.Time) Phase {
	if now.Before(start) {
		return PhaseUpcoming
	}
	if now.Before(end) {
		return PhaseLive
	}
	return PhaseCompleted
}
