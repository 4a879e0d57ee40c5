package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
)

// SessionRepo provides persistence for station sessions. Lifecycle
// transitions that must be atomic (start, complete) own their
// transaction here and compose the Tx helpers of the station and
// profile repositories, so a transition either lands entirely or not
// at all. Single-row transitions (pause, resume) are conditional
// UPDATEs whose affected-row count doubles as the state check.
type SessionRepo struct {
    db       *sql.DB
    stations *StationRepo
    profiles *ProfileRepo
}

// NewSessionRepo returns a SessionRepo composing the station and
// profile repositories for their transactional helpers.
func NewSessionRepo(db *sql.DB, stations *StationRepo, profiles *ProfileRepo) *SessionRepo {
    return &SessionRepo{db: db, stations: stations, profiles: profiles}
}

// SessionCompletion carries every field the stop transition writes.
// The service computes duration, cost and point shares; this record
// is what lands in one transaction.
type SessionCompletion struct {
    SessionID      uint64
    StationID      uint64
    MemberIDs      []uint64 // final participant set (replaces prior set when overridden)
    ReplaceMembers bool
    EndedAt        time.Time
    DurationMin    int
    BaseCost       float64
    ExtrasCost     float64
    TotalCost      float64
    PaymentStatus  string
    PointsAwarded  int
    Shares         map[uint64]int // memberID -> points credited
}

// Start creates an active session and claims its station in a single
// transaction. The claim is a compare-and-swap on the station row, so
// a concurrent start on the same station rolls back with ErrConflict
// and leaves no orphan session.
func (r *SessionRepo) Start(ctx context.Context, stationID uint64, memberIDs []uint64, groupRate bool, startedAt time.Time) (model.Session, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Session{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO sessions (station_id, group_rate, started_at, payment_status, status)
               VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, stationID, groupRate, startedAt, model.PaymentUnpaid, model.SessionActive)
    if err != nil {
        return model.Session{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Session{}, err
    }
    sessionID := uint64(id)

    if err := insertSessionMembersTx(ctx, tx, sessionID, memberIDs); err != nil {
        return model.Session{}, err
    }
    if err := r.stations.ClaimTx(ctx, tx, stationID, sessionID); err != nil {
        return model.Session{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Session{}, err
    }
    committed = true

    return model.Session{
        ID:            sessionID,
        StationID:     stationID,
        MemberIDs:     memberIDs,
        GroupRate:     groupRate,
        StartedAt:     startedAt,
        PaymentStatus: model.PaymentUnpaid,
        Status:        model.SessionActive,
    }, nil
}

// insertSessionMembersTx bulk-inserts the participant set. An empty
// set (walk-in) inserts nothing and returns nil.
func insertSessionMembersTx(ctx context.Context, tx *sql.Tx, sessionID uint64, memberIDs []uint64) error {
    if len(memberIDs) == 0 {
        return nil
    }
    query := `INSERT INTO session_members (session_id, profile_id) VALUES `
    args := make([]interface{}, 0, len(memberIDs)*2)
    for i, mid := range memberIDs {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, sessionID, mid)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

const sessionColumns = `id, station_id, group_rate, started_at, paused_at, ended_at, duration_min,
                        base_cost, extras_cost, total_cost, payment_status, points_awarded, status,
                        created_at, updated_at`

func scanSession(row interface{ Scan(...interface{}) error }) (model.Session, error) {
    var s model.Session
    var pausedAt, endedAt sql.NullTime
    var duration sql.NullInt64
    err := row.Scan(&s.ID, &s.StationID, &s.GroupRate, &s.StartedAt, &pausedAt, &endedAt, &duration,
        &s.BaseCost, &s.ExtrasCost, &s.TotalCost, &s.PaymentStatus, &s.PointsAwarded, &s.Status,
        &s.CreatedAt, &s.UpdatedAt)
    if err != nil {
        return model.Session{}, err
    }
    if pausedAt.Valid {
        t := pausedAt.Time
        s.PausedAt = &t
    }
    if endedAt.Valid {
        t := endedAt.Time
        s.EndedAt = &t
    }
    if duration.Valid {
        d := int(duration.Int64)
        s.DurationMin = &d
    }
    return s, nil
}

// GetByID returns a session with its participant set.
// ErrSessionNotFound is returned when no row matches.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (model.Session, error) {
    const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
    s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Session{}, ErrSessionNotFound
    }
    if err != nil {
        return model.Session{}, err
    }
    if s.MemberIDs, err = r.memberIDs(ctx, s.ID); err != nil {
        return model.Session{}, err
    }
    return s, nil
}

// ActiveByStation returns the station's active session, if any.
func (r *SessionRepo) ActiveByStation(ctx context.Context, stationID uint64) (model.Session, error) {
    const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE station_id = ? AND status = ? LIMIT 1`
    s, err := scanSession(r.db.QueryRowContext(ctx, q, stationID, model.SessionActive))
    if err == sql.ErrNoRows {
        return model.Session{}, ErrSessionNotFound
    }
    if err != nil {
        return model.Session{}, err
    }
    if s.MemberIDs, err = r.memberIDs(ctx, s.ID); err != nil {
        return model.Session{}, err
    }
    return s, nil
}

func (r *SessionRepo) memberIDs(ctx context.Context, sessionID uint64) ([]uint64, error) {
    const q = `SELECT profile_id FROM session_members WHERE session_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, sessionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// Pause freezes the session clock. The UPDATE only matches a running
// session, so pausing twice (or pausing a completed session) affects
// zero rows and surfaces ErrInvalidState.
func (r *SessionRepo) Pause(ctx context.Context, sessionID uint64, pausedAt time.Time) error {
    const q = `UPDATE sessions SET paused_at = ? WHERE id = ? AND status = ? AND paused_at IS NULL`
    res, err := r.db.ExecContext(ctx, q, pausedAt, sessionID, model.SessionActive)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrInvalidState
    }
    return nil
}

// Resume clears the pause and shifts the effective start reference
// forward by the paused span, all inside the database so the
// read-compute-write race of doing it client-side cannot occur.
// Billable elapsed time therefore never includes the pause.
func (r *SessionRepo) Resume(ctx context.Context, sessionID uint64, resumedAt time.Time) error {
    const q = `UPDATE sessions
               SET started_at = DATE_ADD(started_at, INTERVAL TIMESTAMPDIFF(SECOND, paused_at, ?) SECOND),
                   paused_at = NULL
               WHERE id = ? AND status = ? AND paused_at IS NOT NULL`
    res, err := r.db.ExecContext(ctx, q, resumedAt, sessionID, model.SessionActive)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrInvalidState
    }
    return nil
}

// Complete finalises a session: end fields, optional participant
// replacement, loyalty credits and the station release all commit in
// one transaction. When the session is no longer active (a concurrent
// stop won the race) ErrSessionNotFound is returned and nothing is
// written; the caller force-frees the station on its own.
func (r *SessionRepo) Complete(ctx context.Context, rec SessionCompletion) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `UPDATE sessions
               SET ended_at = ?, duration_min = ?, base_cost = ?, extras_cost = ?, total_cost = ?,
                   payment_status = ?, points_awarded = ?, status = ?, paused_at = NULL
               WHERE id = ? AND status = ?`
    res, err := tx.ExecContext(ctx, q,
        rec.EndedAt, rec.DurationMin, rec.BaseCost, rec.ExtrasCost, rec.TotalCost,
        rec.PaymentStatus, rec.PointsAwarded, model.SessionCompleted,
        rec.SessionID, model.SessionActive)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSessionNotFound
    }

    if rec.ReplaceMembers {
        if _, err := tx.ExecContext(ctx, `DELETE FROM session_members WHERE session_id = ?`, rec.SessionID); err != nil {
            return err
        }
        if err := insertSessionMembersTx(ctx, tx, rec.SessionID, rec.MemberIDs); err != nil {
            return err
        }
    }

    // Each credit targets a disjoint profile row; no cross-member
    // ordering concern.
    for memberID, points := range rec.Shares {
        if err := r.profiles.CreditTx(ctx, tx, memberID, points); err != nil {
            return err
        }
    }

    if err := r.stations.ReleaseTx(ctx, tx, rec.StationID); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// ActiveStationIDs returns the IDs of stations whose active session
// began before the given instant. An active session has no end yet, so
// for availability purposes it occupies its station from its start
// onward; it conflicts with any window ending after that start.
func (r *SessionRepo) ActiveStationIDs(ctx context.Context, before time.Time) ([]uint64, error) {
    const q = `SELECT DISTINCT station_id FROM sessions WHERE status = ? AND started_at < ?`
    rows, err := r.db.QueryContext(ctx, q, model.SessionActive, before)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}
