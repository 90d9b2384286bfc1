package ports

import (
	"context"
	"time"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// LocationInput is a device geolocation reading. A nil *LocationInput on any
// clock input means the browser has not produced a reading yet.
type LocationInput struct {
	Lat float64
	Lon float64
}

// StatusInput identifies the current device and its (possibly absent) reading.
type StatusInput struct {
	SubContractor string
	DeviceID      string
	Location      *LocationInput
}

// RegisterInput carries the inline registration sub-flow data. Name is only
// required when the number is brand new.
type RegisterInput struct {
	SubContractor string
	Number        string
	Name          string
	DeviceID      string
	Location      *LocationInput
}

// ActionInput carries a clock-in or clock-out request.
type ActionInput struct {
	SubContractor string
	DeviceID      string
	Location      *LocationInput
}

// ClockContext is the per-request workflow snapshot returned by every clock
// operation: identity, location, and state travel together instead of living
// in process-wide session state.
type ClockContext struct {
	State     domain.ClockState
	Worker    *domain.Worker // nil until identified
	Site      string         // resolved site name, empty when not located
	Location  *LocationInput // the reading this cycle was evaluated with
	OpenSince *time.Time     // clock-in time of the open session, if any
	ActionAt  *time.Time     // timestamp of a clock action performed this call
}

// ClockService drives the worker-facing workflow: identify, gate on location,
// clock in, clock out.
type ClockService interface {
	Status(ctx context.Context, in StatusInput) (*ClockContext, error)
	Register(ctx context.Context, in RegisterInput) (*ClockContext, error)
	ClockIn(ctx context.Context, in ActionInput) (*ClockContext, error)
	ClockOut(ctx context.Context, in ActionInput) (*ClockContext, error)
}
