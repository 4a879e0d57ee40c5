// Package loyalty computes and splits the points earned by a session.
package loyalty

// Share is one member's cut of a session's points.
type Share struct {
    MemberID uint64
    Points   int
}

// TotalPoints returns floor(pointsPerHour * minutes / 60).  Negative
// inputs yield zero.
func TotalPoints(pointsPerHour float64, durationMinutes int) int {
    if pointsPerHour <= 0 || durationMinutes <= 0 {
        return 0
    }
    return int(pointsPerHour * float64(durationMinutes) / 60)
}

// Split divides total points evenly among the given members.  Each
// member receives floor(total/N); the remainder goes one point at a
// time to the earliest members in list order, so the shares always sum
// to exactly total.  An empty member list returns no shares — walk-in
// sessions record the total for audit but credit nobody.
func Split(total int, memberIDs []uint64) []Share {
    if total < 0 || len(memberIDs) == 0 {
        return nil
    }
    n := len(memberIDs)
    each := total / n
    rem := total % n
    shares := make([]Share, n)
    for i, id := range memberIDs {
        pts := each
        if i < rem {
            pts++
        }
        shares[i] = Share{MemberID: id, Points: pts}
    }
    return shares
}
