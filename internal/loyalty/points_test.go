package loyalty_test

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/hamzaidr/lounge-station-booking/internal/loyalty"
)

func TestTotalPoints(t *testing.T) {
    assert.Equal(t, 7, loyalty.TotalPoints(10, 45), "10 pts/hr for 45 min floors to 7")
    assert.Equal(t, 10, loyalty.TotalPoints(10, 60))
    assert.Equal(t, 0, loyalty.TotalPoints(10, 0))
    assert.Equal(t, 0, loyalty.TotalPoints(0, 240))
    assert.Equal(t, 0, loyalty.TotalPoints(10, -30))
    assert.Equal(t, 3, loyalty.TotalPoints(2.5, 90))
}

func TestSplitExample(t *testing.T) {
    shares := loyalty.Split(7, []uint64{11, 22})
    assert.Equal(t, []loyalty.Share{{MemberID: 11, Points: 4}, {MemberID: 22, Points: 3}}, shares)
}

func TestSplitWalkIn(t *testing.T) {
    assert.Nil(t, loyalty.Split(42, nil))
}

func TestSplitConservesTotal(t *testing.T) {
    members := []uint64{1, 2, 3, 4, 5, 6, 7}
    for total := 0; total <= 200; total++ {
        for n := 1; n <= len(members); n++ {
            shares := loyalty.Split(total, members[:n])
            sum := 0
            for _, s := range shares {
                sum += s.Points
                // no share strays outside floor/ceil of the even cut
                assert.GreaterOrEqual(t, s.Points, total/n)
                assert.LessOrEqual(t, s.Points, (total+n-1)/n)
            }
            assert.Equal(t, total, sum, "total=%d n=%d", total, n)
        }
    }
}
