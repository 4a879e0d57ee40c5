// Package scheduling resolves station availability against overlapping
// booking and session windows.  All windows are half-open [start, end):
// a reservation ending at T never conflicts with one starting at T.
package scheduling

import (
    "math/rand/v2"
    "time"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// Booking duration bounds in minutes, inclusive.  Requests outside the
// range are rejected outright, never clamped.
const (
    MinDurationMinutes = 30
    MaxDurationMinutes = 480
)

// MinLeadTime is how far in the future a booking must start.
const MinLeadTime = 15 * time.Minute

// Window is a half-open [Start, End) time interval.
type Window struct {
    Start time.Time
    End   time.Time
}

// Overlaps reports whether two half-open windows intersect:
// existingStart < windowEnd && existingEnd > windowStart.
func (w Window) Overlaps(other Window) bool {
    return other.Start.Before(w.End) && other.End.After(w.Start)
}

// ValidDuration reports whether minutes is inside the booking bounds.
func ValidDuration(minutes int) bool {
    return minutes >= MinDurationMinutes && minutes <= MaxDurationMinutes
}

// PickAvailable removes every station whose ID appears in busy and
// selects uniformly at random among the rest.  Random rather than
// first-free is a load-spreading policy: repeated identical requests
// should not pile onto the same station.  The second return value is
// false when no candidate survives.
func PickAvailable(candidates []model.Station, busy map[uint64]struct{}) (*model.Station, bool) {
    free := make([]model.Station, 0, len(candidates))
    for _, st := range candidates {
        if _, taken := busy[st.ID]; !taken {
            free = append(free, st)
        }
    }
    if len(free) == 0 {
        return nil, false
    }
    pick := free[rand.IntN(len(free))]
    return &pick, true
}
