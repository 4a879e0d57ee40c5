package scheduling_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/scheduling"
)

func win(startHour, startMin, endHour, endMin int) scheduling.Window {
    day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
    return scheduling.Window{
        Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
        End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
    }
}

func TestOverlaps(t *testing.T) {
    existing := win(10, 0, 11, 0)

    // back-to-back is not a conflict under half-open semantics
    assert.False(t, existing.Overlaps(win(11, 0, 12, 0)))
    assert.False(t, existing.Overlaps(win(9, 0, 10, 0)))

    assert.True(t, existing.Overlaps(win(10, 30, 11, 30)))
    assert.True(t, existing.Overlaps(win(9, 30, 10, 30)))
    assert.True(t, existing.Overlaps(win(10, 15, 10, 45)), "contained window")
    assert.True(t, existing.Overlaps(win(9, 0, 12, 0)), "containing window")
}

func TestValidDuration(t *testing.T) {
    assert.False(t, scheduling.ValidDuration(29))
    assert.True(t, scheduling.ValidDuration(30))
    assert.True(t, scheduling.ValidDuration(480))
    assert.False(t, scheduling.ValidDuration(481))
    assert.False(t, scheduling.ValidDuration(0))
}

func TestPickAvailable(t *testing.T) {
    stations := []model.Station{{ID: 1}, {ID: 2}, {ID: 3}}

    st, ok := scheduling.PickAvailable(stations, map[uint64]struct{}{1: {}, 3: {}})
    assert.True(t, ok)
    assert.Equal(t, uint64(2), st.ID)

    _, ok = scheduling.PickAvailable(stations, map[uint64]struct{}{1: {}, 2: {}, 3: {}})
    assert.False(t, ok)

    // with several free stations the pick stays inside the free set
    seen := map[uint64]bool{}
    for i := 0; i < 50; i++ {
        st, ok := scheduling.PickAvailable(stations, map[uint64]struct{}{2: {}})
        assert.True(t, ok)
        assert.NotEqual(t, uint64(2), st.ID)
        seen[st.ID] = true
    }
    assert.True(t, seen[1] || seen[3])
}
