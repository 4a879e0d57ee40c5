// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrConflict signals that a station is
// already claimed or that no station survives conflict checking for a
// window, while ErrInvalidState rejects a pause/resume issued against
// the wrong lifecycle state.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state: starting a session on a station that already
// carries one, or booking a window with no free station of the
// requested type. Handlers should translate this into an HTTP 409
// response so callers can offer a "try another time" flow.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when a lifecycle transition is issued
// from the wrong state, such as pausing a session that is already
// paused or resuming one that is running. These are strict on purpose:
// silently ignoring them would corrupt the elapsed-time math.
var ErrInvalidState = errors.New("invalid session state")

// ErrStationNotFound is returned when no station exists with the
// requested ID.
var ErrStationNotFound = errors.New("station not found")

// ErrSessionNotFound is returned when a session lookup matches no
// active row. The stop transition treats this as recoverable and
// force-frees the station instead of failing.
var ErrSessionNotFound = errors.New("session not found")

// ErrBookingNotFound is returned when no booking exists with the
// requested ID.
var ErrBookingNotFound = errors.New("booking not found")

// ErrProfileNotFound is returned when a member has no loyalty profile
// row.
var ErrProfileNotFound = errors.New("profile not found")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
