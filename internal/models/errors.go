package models

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup which legitimately has no result, such as a
// geocode miss or an empty hotel search. It is non-fatal at the point of
// occurrence and only escalates when the missing data is a hard
// requirement.
var ErrNotFound = errors.New("not found")

// ErrUnavailable marks data a collaborator could not provide right now,
// such as weather for a date range spanning past and future. The core
// treats it the same as ErrNotFound.
var ErrUnavailable = errors.New("unavailable")

// SchemaViolationError is returned when the generation service produced a
// document which fails to parse against the declared schema. It is fatal
// for the affected leg and aborts the trip, no defaults are substituted.
type SchemaViolationError struct {
	Missing []string
	Cause   error
}

func (e SchemaViolationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema violation, required fields missing: %v", e.Missing)
	}
	return fmt.Sprintf("schema violation: %v", e.Cause)
}

func (e SchemaViolationError) Unwrap() error {
	return e.Cause
}

// BudgetExceededError is detected once, after all legs are priced, and
// aborts the run before any itinerary text is generated.
type BudgetExceededError struct {
	Budget     float64
	FlightCost float64
	HotelCost  float64
}

func (e BudgetExceededError) Error() string {
	return fmt.Sprintf("total flight cost ($%.2f) + hotel cost ($%.2f) exceed the budget ($%.2f)",
		e.FlightCost, e.HotelCost, e.Budget)
}

// LegError wraps a fatal failure with the leg it occurred on, so that the
// planner can report which leg and component sank the trip.
type LegError struct {
	Leg       int
	Component string
	Err       error
}

func (e LegError) Error() string {
	return fmt.Sprintf("leg %v (%v): %v", e.Leg, e.Component, e.Err)
}

func (e LegError) Unwrap() error {
	return e.Err
}
