// Package pricing computes session and booking charges.  All amounts
// are in MAD and rounded to two decimal places on the cent value,
// half away from zero, at every step rather than only at the end, so
// totals match receipts exactly.
package pricing

import "math"

// roundCents rounds v to two decimal places, half away from zero.
func roundCents(v float64) float64 {
    return math.Round(v*100) / 100
}

// Cost returns the charge for durationMinutes at ratePerHour.
// Negative durations bill as zero; rates are expected non-negative.
func Cost(ratePerHour float64, durationMinutes int) float64 {
    if durationMinutes < 0 {
        durationMinutes = 0
    }
    return roundCents(float64(durationMinutes) / 60 * ratePerHour)
}

// SelectRate picks the hourly rate for a session.  When the operator
// flags a 4-person session and the station offers a group rate, the
// group rate applies; otherwise the solo rate is used.  Requesting a
// group rate on a station without one silently falls back to solo —
// graceful degradation, not an error.
func SelectRate(soloRate float64, groupRate *float64, group bool) float64 {
    if group && groupRate != nil {
        return *groupRate
    }
    return soloRate
}

// Total sums a base charge and extra line items (snacks, peripherals).
// Each extra is rounded to cents independently before summing, and the
// sum is rounded again.
func Total(base float64, extras []float64) float64 {
    total := roundCents(base)
    for _, e := range extras {
        total += roundCents(e)
    }
    return roundCents(total)
}
