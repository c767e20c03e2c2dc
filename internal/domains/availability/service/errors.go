package service

import (
	"errors"
	"fmt"
	"net/http"

	"mariachi/shared/failure"
)

var (
	ErrDateBlocked  = errors.New("date blocked")
	ErrSlotConflict = errors.New("slot conflict")
	ErrPastDate     = errors.New("past date")
	ErrInvalidTime  = errors.New("invalid time")
)

const (
	EntityReservation = "reservation"
	EntityQuotation   = "quotation"
	EntityRehearsal   = "rehearsal"
)

const (
	reasonBlocked             = "blocked"
	reasonPastDate            = "past_date"
	reasonInvalidTime         = "invalid_time"
	reasonConflictReservation = "conflict_reservation"
	reasonConflictQuotation   = "conflict_quotation"
	reasonConflictRehearsal   = "conflict_rehearsal"
)

// RejectionError is a booking refusal. Its message is meant for the end user
// and it matches both its kind and a *failure.Failure carrying the HTTP code.
type RejectionError struct {
	Kind    error
	Reason  string
	failure *failure.Failure
}

func (e *RejectionError) Error() string {
	return e.failure.Message
}

func (e *RejectionError) Unwrap() []error {
	return []error{e.Kind, e.failure}
}

func reject(kind error, reason, format string, args ...any) *RejectionError {
	code := http.StatusConflict
	if kind == ErrPastDate || kind == ErrInvalidTime {
		code = http.StatusBadRequest
	}

	return &RejectionError{
		Kind:    kind,
		Reason:  reason,
		failure: &failure.Failure{Code: code, Message: fmt.Sprintf(format, args...), Reason: reason},
	}
}
