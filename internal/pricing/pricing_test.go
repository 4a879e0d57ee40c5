package pricing_test

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/hamzaidr/lounge-station-booking/internal/pricing"
)

func TestCost(t *testing.T) {
    cases := []struct {
        name    string
        rate    float64
        minutes int
        want    float64
    }{
        {"45 minutes at 40/hr", 40, 45, 30.00},
        {"full hour", 40, 60, 40.00},
        {"half hour", 25, 30, 12.50},
        {"rounds cent value", 33.33, 47, 26.11},
        {"zero rate", 0, 120, 0},
        {"zero duration", 40, 0, 0},
        {"negative duration bills as zero", 40, -15, 0},
        {"eight hours premium", 55.5, 480, 444.00},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.InDelta(t, tc.want, pricing.Cost(tc.rate, tc.minutes), 1e-9)
        })
    }
}

func TestCostMonotonicInDuration(t *testing.T) {
    prev := 0.0
    for d := 30; d <= 480; d++ {
        cur := pricing.Cost(37.9, d)
        assert.GreaterOrEqual(t, cur, prev, "cost decreased at %d minutes", d)
        prev = cur
    }
}

func TestSelectRate(t *testing.T) {
    group := 120.0
    assert.Equal(t, 40.0, pricing.SelectRate(40, &group, false), "solo session uses solo rate")
    assert.Equal(t, 120.0, pricing.SelectRate(40, &group, true), "group session uses group rate")
    assert.Equal(t, 40.0, pricing.SelectRate(40, nil, true), "missing group rate falls back to solo")
}

func TestTotal(t *testing.T) {
    assert.InDelta(t, 30.00, pricing.Total(30, nil), 1e-9)
    assert.InDelta(t, 45.50, pricing.Total(30, []float64{10, 5.5}), 1e-9)
    // each extra rounds independently before the final sum rounds again
    assert.InDelta(t, 45.01, pricing.Total(30, []float64{10.004, 5.006}), 1e-9)
}
