package service

import "fmt"

// ValidationError marks input the caller can fix: an unknown station
// type, a window in the past, a duration outside the allowed bounds.
// Handlers translate it into an HTTP 422 and never retry it.
type ValidationError struct {
    msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...interface{}) *ValidationError {
    return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
