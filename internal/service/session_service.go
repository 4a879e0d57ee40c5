// Package service implements the station lifecycle and booking
// scheduling on top of the repository layer. Services consume narrow
// store interfaces so the transition logic can be exercised against
// fakes; the MySQL repositories satisfy them in production.
package service

import (
    "context"
    "log"
    "math"
    "time"

    "github.com/hamzaidr/lounge-station-booking/internal/loyalty"
    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/pricing"
    "github.com/hamzaidr/lounge-station-booking/internal/queue"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
)

// StationStore is the station access the lifecycle needs.
type StationStore interface {
    GetByID(ctx context.Context, id uint64) (model.Station, error)
    Release(ctx context.Context, stationID uint64) error
}

// SessionStore persists session transitions. Start and Complete are
// atomic units: Start claims the station or fails with ErrConflict,
// Complete lands end fields, credits and the station release together.
type SessionStore interface {
    Start(ctx context.Context, stationID uint64, memberIDs []uint64, groupRate bool, startedAt time.Time) (model.Session, error)
    GetByID(ctx context.Context, id uint64) (model.Session, error)
    ActiveByStation(ctx context.Context, stationID uint64) (model.Session, error)
    Pause(ctx context.Context, sessionID uint64, pausedAt time.Time) error
    Resume(ctx context.Context, sessionID uint64, resumedAt time.Time) error
    Complete(ctx context.Context, rec repository.SessionCompletion) error
}

// SettingsStore reads the lounge business settings.
type SettingsStore interface {
    PointsPerHour(ctx context.Context) (float64, error)
    SessionAlertsEnabled(ctx context.Context) (bool, error)
}

// AlertNotifier emits best-effort staff alerts. Implementations must
// never panic; errors are logged and dropped by the caller.
type AlertNotifier interface {
    PublishSessionAlert(ctx context.Context, ev queue.SessionAlertEvent) error
}

// SessionService drives one station's occupancy through
// Free -> Running <-> Paused -> Completed. Every invocation re-reads
// state from the store and writes back through conditional updates, so
// correctness under concurrent operator actions rests on the store's
// per-row semantics rather than in-process locks.
type SessionService struct {
    Stations StationStore
    Sessions SessionStore
    Settings SettingsStore
    Alerts   AlertNotifier

    // Now returns the current time; tests substitute a fixed clock.
    Now func() time.Time
}

// NewSessionService wires a SessionService. Alerts may be nil when no
// broker is configured; unpaid-session alerts are then skipped.
func NewSessionService(stations StationStore, sessions SessionStore, settings SettingsStore, alerts AlertNotifier) *SessionService {
    return &SessionService{
        Stations: stations,
        Sessions: sessions,
        Settings: settings,
        Alerts:   alerts,
        Now:      func() time.Time { return time.Now().UTC() },
    }
}

// Start opens a session on a free station. The station must carry no
// current session; the store's claim is a compare-and-swap, so two
// concurrent starts cannot both succeed. Cost is not computed here —
// billing happens at stop time from the elapsed duration.
func (s *SessionService) Start(ctx context.Context, stationID uint64, memberIDs []uint64, groupRate bool) (model.Session, error) {
    station, err := s.Stations.GetByID(ctx, stationID)
    if err != nil {
        return model.Session{}, err
    }
    if station.CurrentSessionID != nil {
        return model.Session{}, repository.ErrConflict
    }
    if station.Status == model.StationMaintenance {
        return model.Session{}, repository.ErrConflict
    }
    return s.Sessions.Start(ctx, stationID, memberIDs, groupRate, s.Now())
}

// Pause freezes the clock on a running session. Pausing a station with
// no active session, or one already paused, is ErrInvalidState — the
// strictness keeps the elapsed-time math trustworthy.
func (s *SessionService) Pause(ctx context.Context, stationID uint64) error {
    sess, err := s.Sessions.ActiveByStation(ctx, stationID)
    if err != nil {
        if err == repository.ErrSessionNotFound {
            return repository.ErrInvalidState
        }
        return err
    }
    return s.Sessions.Pause(ctx, sess.ID, s.Now())
}

// Resume restarts a paused session's clock. The store shifts the
// session's effective start forward by the paused span, so billable
// elapsed time excludes the pause entirely.
func (s *SessionService) Resume(ctx context.Context, stationID uint64) error {
    sess, err := s.Sessions.ActiveByStation(ctx, stationID)
    if err != nil {
        if err == repository.ErrSessionNotFound {
            return repository.ErrInvalidState
        }
        return err
    }
    if sess.PausedAt == nil {
        return repository.ErrInvalidState
    }
    return s.Sessions.Resume(ctx, sess.ID, s.Now())
}

// StopOptions carries the operator's inputs to a stop transition.
// Nil pointers mean "not supplied": duration falls back to elapsed
// wall clock, total cost to the pricing resolver, members to the set
// recorded at start.
type StopOptions struct {
    DurationMin   *int
    MemberIDs     []uint64 // replaces the participant set when non-nil
    ExtrasCost    float64
    TotalOverride *float64
    PaymentStatus string
}

// StopResult reports what a stop transition did.
type StopResult struct {
    Session    model.Session
    SelfHealed bool // station was freed without a session to complete
}

// Stop ends a station's session. Unlike pause/resume it is forgiving:
// when the station's session pointer is stale (missing or already
// completed) the station is force-freed and the call succeeds — stop
// ends the story, so it self-heals inconsistent state instead of
// erroring. Otherwise duration, cost and points are resolved, profile
// credits applied and the station freed atomically. An unpaid total
// emits a fire-and-forget alert when enabled.
func (s *SessionService) Stop(ctx context.Context, stationID uint64, opts StopOptions) (StopResult, error) {
    payment := opts.PaymentStatus
    if payment == "" {
        payment = model.PaymentUnpaid
    }
    if payment != model.PaymentPaid && payment != model.PaymentUnpaid {
        return StopResult{}, validationf("unknown payment status %q", opts.PaymentStatus)
    }

    station, err := s.Stations.GetByID(ctx, stationID)
    if err != nil {
        return StopResult{}, err
    }
    if station.CurrentSessionID == nil {
        // Idempotent no-op: nothing to complete, make sure the status
        // agrees with the missing pointer.
        if err := s.Stations.Release(ctx, stationID); err != nil {
            return StopResult{}, err
        }
        return StopResult{SelfHealed: true}, nil
    }

    sess, err := s.Sessions.GetByID(ctx, *station.CurrentSessionID)
    if err == repository.ErrSessionNotFound {
        if err := s.Stations.Release(ctx, stationID); err != nil {
            return StopResult{}, err
        }
        return StopResult{SelfHealed: true}, nil
    }
    if err != nil {
        return StopResult{}, err
    }
    if sess.Status != model.SessionActive {
        if err := s.Stations.Release(ctx, stationID); err != nil {
            return StopResult{}, err
        }
        return StopResult{SelfHealed: true}, nil
    }

    now := s.Now()
    // A paused session stopped without resuming bills up to the pause.
    endRef := now
    if sess.PausedAt != nil {
        endRef = *sess.PausedAt
    }

    duration := int(math.Round(endRef.Sub(sess.StartedAt).Minutes()))
    if duration < 0 {
        duration = 0
    }
    if opts.DurationMin != nil && *opts.DurationMin >= 0 {
        duration = *opts.DurationMin
    }

    members := sess.MemberIDs
    replace := false
    if opts.MemberIDs != nil {
        members = opts.MemberIDs
        replace = true
    }

    rate := pricing.SelectRate(station.SoloRate, station.GroupRate, sess.GroupRate)
    base := pricing.Cost(rate, duration)
    total := pricing.Total(base, []float64{opts.ExtrasCost})
    if opts.TotalOverride != nil && *opts.TotalOverride >= 0 {
        total = *opts.TotalOverride
    }

    pph, err := s.Settings.PointsPerHour(ctx)
    if err != nil {
        return StopResult{}, err
    }
    totalPoints := loyalty.TotalPoints(pph, duration)
    shares := make(map[uint64]int, len(members))
    for _, sh := range loyalty.Split(totalPoints, members) {
        shares[sh.MemberID] = sh.Points
    }

    endedAt := sess.StartedAt.Add(time.Duration(duration) * time.Minute)
    rec := repository.SessionCompletion{
        SessionID:      sess.ID,
        StationID:      stationID,
        MemberIDs:      members,
        ReplaceMembers: replace,
        EndedAt:        endedAt,
        DurationMin:    duration,
        BaseCost:       base,
        ExtrasCost:     opts.ExtrasCost,
        TotalCost:      total,
        PaymentStatus:  payment,
        PointsAwarded:  totalPoints,
        Shares:         shares,
    }
    if err := s.Sessions.Complete(ctx, rec); err != nil {
        if err == repository.ErrSessionNotFound {
            // Lost a race with another stop; the winner wrote the
            // session, we only make sure the station is free.
            if err := s.Stations.Release(ctx, stationID); err != nil {
                return StopResult{}, err
            }
            return StopResult{SelfHealed: true}, nil
        }
        return StopResult{}, err
    }

    done := sess
    done.MemberIDs = members
    done.PausedAt = nil
    done.EndedAt = &endedAt
    done.DurationMin = &duration
    done.BaseCost = base
    done.ExtrasCost = opts.ExtrasCost
    done.TotalCost = total
    done.PaymentStatus = payment
    done.PointsAwarded = totalPoints
    done.Status = model.SessionCompleted

    if payment == model.PaymentUnpaid {
        s.maybeAlert(ctx, station, done)
    }
    return StopResult{Session: done}, nil
}

// maybeAlert publishes an unpaid-session alert when enabled. Failures
// are logged and swallowed: alerting must never fail a stop.
func (s *SessionService) maybeAlert(ctx context.Context, station model.Station, sess model.Session) {
    if s.Alerts == nil {
        return
    }
    enabled, err := s.Settings.SessionAlertsEnabled(ctx)
    if err != nil || !enabled {
        if err != nil {
            log.Printf("session: read alert settings failed: %v", err)
        }
        return
    }
    ev := queue.SessionAlertEvent{
        Title:       "Unpaid session",
        Message:     "session ended with an outstanding balance",
        Type:        "warning",
        Link:        "/dashboard/sessions",
        SessionID:   sess.ID,
        StationID:   station.ID,
        StationName: station.Name,
        TotalCost:   sess.TotalCost,
        DurationMin: *sess.DurationMin,
        EndedAt:     sess.EndedAt.Format(time.RFC3339),
    }
    if err := s.Alerts.PublishSessionAlert(ctx, ev); err != nil {
        log.Printf("session: publish unpaid alert failed: %v", err)
    }
}
