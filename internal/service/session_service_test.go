package service_test

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/hamzaidr/lounge-station-booking/internal/model"
    "github.com/hamzaidr/lounge-station-booking/internal/queue"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/service"
)

// storeFake backs the session service with in-memory state. It
// mirrors the repository contracts: conditional transitions fail with
// the same sentinels the MySQL layer returns.
type storeFake struct {
    stations map[uint64]*model.Station
    sessions map[uint64]*model.Session
    nextID   uint64

    pph           float64
    alertsEnabled bool
    alertErr      error

    released []uint64
    credits  map[uint64]int
    visits   map[uint64]int
    alerts   []queue.SessionAlertEvent
}

func newStoreFake() *storeFake {
    return &storeFake{
        stations:      map[uint64]*model.Station{},
        sessions:      map[uint64]*model.Session{},
        pph:           10,
        alertsEnabled: true,
        credits:       map[uint64]int{},
        visits:        map[uint64]int{},
    }
}

func (f *storeFake) addStation(st model.Station) {
    cp := st
    f.stations[st.ID] = &cp
}

func (f *storeFake) GetByID(_ context.Context, id uint64) (model.Station, error) {
    st, ok := f.stations[id]
    if !ok {
        return model.Station{}, repository.ErrStationNotFound
    }
    return *st, nil
}

func (f *storeFake) Release(_ context.Context, stationID uint64) error {
    if st, ok := f.stations[stationID]; ok {
        st.Status = model.StationFree
        st.CurrentSessionID = nil
    }
    f.released = append(f.released, stationID)
    return nil
}

func (f *storeFake) Start(_ context.Context, stationID uint64, memberIDs []uint64, groupRate bool, startedAt time.Time) (model.Session, error) {
    st, ok := f.stations[stationID]
    if !ok {
        return model.Session{}, repository.ErrStationNotFound
    }
    if st.CurrentSessionID != nil || st.Status == model.StationMaintenance {
        return model.Session{}, repository.ErrConflict
    }
    f.nextID++
    sess := &model.Session{
        ID:            f.nextID,
        StationID:     stationID,
        MemberIDs:     memberIDs,
        GroupRate:     groupRate,
        StartedAt:     startedAt,
        PaymentStatus: model.PaymentUnpaid,
        Status:        model.SessionActive,
    }
    f.sessions[sess.ID] = sess
    id := sess.ID
    st.CurrentSessionID = &id
    st.Status = model.StationOccupied
    return *sess, nil
}

func (f *storeFake) sessionByID(id uint64) (*model.Session, bool) {
    s, ok := f.sessions[id]
    return s, ok
}

func (f *storeFake) GetByIDSession(id uint64) (model.Session, error) {
    s, ok := f.sessions[id]
    if !ok {
        return model.Session{}, repository.ErrSessionNotFound
    }
    return *s, nil
}

func (f *storeFake) ActiveByStation(_ context.Context, stationID uint64) (model.Session, error) {
    for _, s := range f.sessions {
        if s.StationID == stationID && s.Status == model.SessionActive {
            return *s, nil
        }
    }
    return model.Session{}, repository.ErrSessionNotFound
}

func (f *storeFake) Pause(_ context.Context, sessionID uint64, pausedAt time.Time) error {
    s, ok := f.sessionByID(sessionID)
    if !ok || s.Status != model.SessionActive || s.PausedAt != nil {
        return repository.ErrInvalidState
    }
    t := pausedAt
    s.PausedAt = &t
    return nil
}

func (f *storeFake) Resume(_ context.Context, sessionID uint64, resumedAt time.Time) error {
    s, ok := f.sessionByID(sessionID)
    if !ok || s.Status != model.SessionActive || s.PausedAt == nil {
        return repository.ErrInvalidState
    }
    s.StartedAt = s.StartedAt.Add(resumedAt.Sub(*s.PausedAt))
    s.PausedAt = nil
    return nil
}

func (f *storeFake) Complete(_ context.Context, rec repository.SessionCompletion) error {
    s, ok := f.sessionByID(rec.SessionID)
    if !ok || s.Status != model.SessionActive {
        return repository.ErrSessionNotFound
    }
    s.Status = model.SessionCompleted
    s.PausedAt = nil
    s.EndedAt = &rec.EndedAt
    d := rec.DurationMin
    s.DurationMin = &d
    s.BaseCost = rec.BaseCost
    s.ExtrasCost = rec.ExtrasCost
    s.TotalCost = rec.TotalCost
    s.PaymentStatus = rec.PaymentStatus
    s.PointsAwarded = rec.PointsAwarded
    if rec.ReplaceMembers {
        s.MemberIDs = rec.MemberIDs
    }
    for member, pts := range rec.Shares {
        f.credits[member] += pts
        f.visits[member]++
    }
    if st, ok := f.stations[rec.StationID]; ok {
        st.Status = model.StationFree
        st.CurrentSessionID = nil
    }
    return nil
}

func (f *storeFake) PointsPerHour(_ context.Context) (float64, error)       { return f.pph, nil }
func (f *storeFake) SessionAlertsEnabled(_ context.Context) (bool, error)  { return f.alertsEnabled, nil }

func (f *storeFake) PublishSessionAlert(_ context.Context, ev queue.SessionAlertEvent) error {
    f.alerts = append(f.alerts, ev)
    return f.alertErr
}

// sessionStoreAdapter maps GetByID onto the fake's session lookup so
// one fake serves both station and session store interfaces.
type sessionStoreAdapter struct{ *storeFake }

func (a sessionStoreAdapter) GetByID(_ context.Context, id uint64) (model.Session, error) {
    return a.storeFake.GetByIDSession(id)
}

var t0 = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

func newService(f *storeFake) *service.SessionService {
    svc := service.NewSessionService(f, sessionStoreAdapter{f}, f, f)
    svc.Now = func() time.Time { return t0 }
    return svc
}

func TestStartOnFreeStation(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Name: "PC-01", Type: model.StationTypeStandard, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)

    sess, err := svc.Start(context.Background(), 1, []uint64{7}, false)
    require.NoError(t, err)
    assert.Equal(t, model.SessionActive, sess.Status)
    assert.Equal(t, t0, sess.StartedAt)

    st := f.stations[1]
    assert.Equal(t, model.StationOccupied, st.Status)
    require.NotNil(t, st.CurrentSessionID)
    assert.Equal(t, sess.ID, *st.CurrentSessionID)
}

func TestStartOccupiedStationConflicts(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationFree})
    svc := newService(f)

    _, err := svc.Start(context.Background(), 1, nil, false)
    require.NoError(t, err)
    _, err = svc.Start(context.Background(), 1, nil, false)
    assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestStartMaintenanceStationConflicts(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationMaintenance})
    svc := newService(f)

    _, err := svc.Start(context.Background(), 1, nil, false)
    assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestPauseResumeStopExcludesPausedTime(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Name: "PC-01", SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    _, err := svc.Start(ctx, 1, []uint64{10, 20}, false)
    require.NoError(t, err)

    svc.Now = func() time.Time { return t0.Add(10 * time.Minute) }
    require.NoError(t, svc.Pause(ctx, 1))

    svc.Now = func() time.Time { return t0.Add(20 * time.Minute) }
    require.NoError(t, svc.Resume(ctx, 1))

    svc.Now = func() time.Time { return t0.Add(30 * time.Minute) }
    res, err := svc.Stop(ctx, 1, service.StopOptions{PaymentStatus: model.PaymentPaid})
    require.NoError(t, err)
    assert.False(t, res.SelfHealed)

    require.NotNil(t, res.Session.DurationMin)
    assert.Equal(t, 20, *res.Session.DurationMin, "10 paused minutes must not bill")
    // 20 min at 40/hr
    assert.InDelta(t, 13.33, res.Session.BaseCost, 1e-9)

    // pph=10, 20 min -> 3 points split 2/1 in list order
    assert.Equal(t, 3, res.Session.PointsAwarded)
    assert.Equal(t, 2, f.credits[10])
    assert.Equal(t, 1, f.credits[20])
    assert.Equal(t, 1, f.visits[10])
    assert.Equal(t, 1, f.visits[20])

    assert.Equal(t, model.StationFree, f.stations[1].Status)
    assert.Nil(t, f.stations[1].CurrentSessionID)
}

func TestPauseIsStrict(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    // no active session at all
    assert.ErrorIs(t, svc.Pause(ctx, 1), repository.ErrInvalidState)

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)

    require.NoError(t, svc.Pause(ctx, 1))
    assert.ErrorIs(t, svc.Pause(ctx, 1), repository.ErrInvalidState, "double pause is rejected")
}

func TestResumeRequiresPause(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    assert.ErrorIs(t, svc.Resume(ctx, 1), repository.ErrInvalidState)

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)
    assert.ErrorIs(t, svc.Resume(ctx, 1), repository.ErrInvalidState, "running session cannot resume")
}

func TestStopWithoutSessionSelfHeals(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationOccupied}) // stale status, no pointer
    svc := newService(f)

    res, err := svc.Stop(context.Background(), 1, service.StopOptions{})
    require.NoError(t, err)
    assert.True(t, res.SelfHealed)
    assert.Equal(t, model.StationFree, f.stations[1].Status)

    // stopping again is still fine
    res, err = svc.Stop(context.Background(), 1, service.StopOptions{})
    require.NoError(t, err)
    assert.True(t, res.SelfHealed)
}

func TestStopStaleSessionPointerSelfHeals(t *testing.T) {
    f := newStoreFake()
    stale := uint64(99)
    f.addStation(model.Station{ID: 1, Status: model.StationOccupied, CurrentSessionID: &stale})
    f.sessions[stale] = &model.Session{ID: stale, StationID: 1, Status: model.SessionCompleted}
    svc := newService(f)

    res, err := svc.Stop(context.Background(), 1, service.StopOptions{})
    require.NoError(t, err)
    assert.True(t, res.SelfHealed)
    assert.Nil(t, f.stations[1].CurrentSessionID)
}

func TestStopExplicitOverrides(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)

    dur := 45
    override := 100.0
    res, err := svc.Stop(ctx, 1, service.StopOptions{
        DurationMin:   &dur,
        ExtrasCost:    5,
        TotalOverride: &override,
        PaymentStatus: model.PaymentPaid,
    })
    require.NoError(t, err)

    assert.Equal(t, 45, *res.Session.DurationMin)
    assert.InDelta(t, 30.00, res.Session.BaseCost, 1e-9, "45 min at 40/hr")
    assert.InDelta(t, 100.0, res.Session.TotalCost, 1e-9, "operator override wins")
    assert.Equal(t, t0.Add(45*time.Minute), *res.Session.EndedAt, "end = start + duration")
}

func TestStopMemberOverrideReplacesParticipants(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, SoloRate: 60, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    _, err := svc.Start(ctx, 1, []uint64{10}, false)
    require.NoError(t, err)

    dur := 60
    res, err := svc.Stop(ctx, 1, service.StopOptions{
        DurationMin:   &dur,
        MemberIDs:     []uint64{20, 30},
        PaymentStatus: model.PaymentPaid,
    })
    require.NoError(t, err)

    assert.Equal(t, []uint64{20, 30}, res.Session.MemberIDs)
    assert.Equal(t, 10, res.Session.PointsAwarded)
    assert.Equal(t, 0, f.credits[10], "replaced member earns nothing")
    assert.Equal(t, 5, f.credits[20])
    assert.Equal(t, 5, f.credits[30])
}

func TestStopWalkInRecordsPointsButCreditsNobody(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)

    dur := 60
    res, err := svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur, PaymentStatus: model.PaymentPaid})
    require.NoError(t, err)

    assert.Equal(t, 10, res.Session.PointsAwarded, "audit total still recorded")
    assert.Empty(t, f.credits)
    assert.Empty(t, f.visits)
}

func TestStopGroupRateSelection(t *testing.T) {
    group := 120.0
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, SoloRate: 40, GroupRate: &group, Status: model.StationFree})
    f.addStation(model.Station{ID: 2, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()
    dur := 60

    _, err := svc.Start(ctx, 1, nil, true)
    require.NoError(t, err)
    res, err := svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur, PaymentStatus: model.PaymentPaid})
    require.NoError(t, err)
    assert.InDelta(t, 120.0, res.Session.BaseCost, 1e-9)

    // group flag without a configured group rate falls back to solo
    _, err = svc.Start(ctx, 2, nil, true)
    require.NoError(t, err)
    res, err = svc.Stop(ctx, 2, service.StopOptions{DurationMin: &dur, PaymentStatus: model.PaymentPaid})
    require.NoError(t, err)
    assert.InDelta(t, 40.0, res.Session.BaseCost, 1e-9)
}

func TestStopUnpaidEmitsAlert(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Name: "PS5-02", SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()
    dur := 60

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)
    _, err = svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur, PaymentStatus: model.PaymentUnpaid})
    require.NoError(t, err)

    require.Len(t, f.alerts, 1)
    assert.Equal(t, "PS5-02", f.alerts[0].StationName)
    assert.InDelta(t, 40.0, f.alerts[0].TotalCost, 1e-9)
}

func TestStopPaidEmitsNoAlert(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()
    dur := 60

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)
    _, err = svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur, PaymentStatus: model.PaymentPaid})
    require.NoError(t, err)
    assert.Empty(t, f.alerts)
}

func TestStopAlertsDisabled(t *testing.T) {
    f := newStoreFake()
    f.alertsEnabled = false
    f.addStation(model.Station{ID: 1, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()
    dur := 60

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)
    _, err = svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur})
    require.NoError(t, err)
    assert.Empty(t, f.alerts)
}

func TestStopSurvivesAlertFailure(t *testing.T) {
    f := newStoreFake()
    f.alertErr = assert.AnError
    f.addStation(model.Station{ID: 1, SoloRate: 40, Status: model.StationFree})
    svc := newService(f)
    ctx := context.Background()
    dur := 60

    _, err := svc.Start(ctx, 1, nil, false)
    require.NoError(t, err)
    _, err = svc.Stop(ctx, 1, service.StopOptions{DurationMin: &dur})
    assert.NoError(t, err, "alert failure must not fail the stop")
}

func TestStopRejectsUnknownPaymentStatus(t *testing.T) {
    f := newStoreFake()
    f.addStation(model.Station{ID: 1, Status: model.StationFree})
    svc := newService(f)

    _, err := svc.Stop(context.Background(), 1, service.StopOptions{PaymentStatus: "iou"})
    var verr *service.ValidationError
    assert.ErrorAs(t, err, &verr)
}
