package domain

import (
	"errors"
	"fmt"
)

// ValidationError blocks a wizard transition; it never reaches the
// booking service.
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

// NetworkError wraps any transport failure or non-success status from
// the booking service.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	if e.Op == "" {
		return "network error"
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e NetworkError) Unwrap() error { return e.Err }

// SeatUnavailableError reports an attempt to pick an occupied seat.
type SeatUnavailableError struct {
	SeatIndex int
}

func (e SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat %d is already booked", e.SeatIndex)
}

// BookingFailedError carries the server-provided reason when booking
// creation is rejected, or a generic message otherwise.
type BookingFailedError struct {
	Reason string
	Err    error
}

func (e BookingFailedError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "booking failed"
}

func (e BookingFailedError) Unwrap() error { return e.Err }

// Artifact generation stages, for distinct user-visible failures.
const (
	StagePreload   = "preload"
	StageCodec     = "codec"
	StageRasterize = "rasterize"
	StageDeliver   = "deliver"
)

// ArtifactError aborts ticket artifact generation. It never alters the
// wizard session; the booking stays valid.
type ArtifactError struct {
	Stage string
	Err   error
}

func (e ArtifactError) Error() string {
	if e.Stage == "" {
		return "ticket artifact generation failed"
	}
	return fmt.Sprintf("ticket artifact %s failed", e.Stage)
}

func (e ArtifactError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNetwork(err error) bool {
	var target NetworkError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsBookingFailed(err error) bool {
	var target BookingFailedError
	return errors.As(err, &target)
}

func IsArtifact(err error) bool {
	var target ArtifactError
	return errors.As(err, &target)
}
