package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// SeatUnavailableError names the exact seats lost to a concurrent booking so
// the caller can retry with the remaining ones.
type SeatUnavailableError struct {
	TripID int64
	Seats  []int
}

func (e SeatUnavailableError) Error() string {
	if len(e.Seats) == 0 {
		return "seat sudah dibooking orang lain"
	}
	parts := make([]string, 0, len(e.Seats))
	for _, s := range e.Seats {
		parts = append(parts, strconv.Itoa(s))
	}
	return fmt.Sprintf("seat %s sudah dibooking orang lain", strings.Join(parts, ","))
}

// ResourceConflictError reports an overlapping bus/driver assignment.
type ResourceConflictError struct {
	Resource          string // "bus" / "driver"
	ResourceID        int64
	ConflictingTripID int64
}

func (e ResourceConflictError) Error() string {
	return fmt.Sprintf("%s sudah dipakai trip #%d pada jam yang bertabrakan", e.Resource, e.ConflictingTripID)
}

// InvalidTransitionError rejects a status change the lifecycle does not allow.
type InvalidTransitionError struct {
	Entity string // "trip" / "booking"
	From   string
	To     string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s tidak bisa pindah status %s -> %s", e.Entity, e.From, e.To)
}

// TransientError signals a storage-layer failure; the whole operation can be
// retried because nothing was committed.
type TransientError struct {
	Op  string
	Err error
}

func (e TransientError) Error() string {
	if e.Op == "" {
		return "kesalahan sementara pada storage"
	}
	return fmt.Sprintf("%s: kesalahan sementara pada storage", e.Op)
}

func (e TransientError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsResourceConflict(err error) bool {
	var target ResourceConflictError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsTransient(err error) bool {
	var target TransientError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
