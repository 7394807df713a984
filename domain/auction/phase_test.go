package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPhaseAt(t *testing.T) {
	req := require.New(t)

	start := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	cases := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{"before start", start.Add(-time.Minute), PhaseUpcoming},
		{"just before start", start.Add(-time.Nanosecond), PhaseUpcoming},
		{"at start", start, PhaseLive},
		{"mid window", start.Add(12 * time.Hour), PhaseLive},
		{"just before end", end.Add(-time.Nanosecond), PhaseLive},
		{"at end", end, PhaseCompleted},
		{"after end", end.Add(time.Hour), PhaseCompleted},
	}

	for _, c := range cases {
		req.Equal(c.want, PhaseAt(c.now, start, end), c.name)
	}
}

func TestPhaseAtAfterExtension(t *testing.T) {
	req := require.New(t)

	start := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := end.Add(30 * time.Minute)

	req.Equal(PhaseCompleted, PhaseAt(now, start, end))

	// extension pushes only the end forward, the auction re-reads as live
	extended := end.Add(ExtensionDuration)
	req.Equal(PhaseLive, PhaseAt(now, start, extended))
}
