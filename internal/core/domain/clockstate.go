package domain

import "errors"

// ClockState is the workflow state of a single request/render cycle.
type ClockState string

const (
	StateUnidentified    ClockState = "unidentified"
	StateIdentifying     ClockState = "identifying"
	StateLocationPending ClockState = "location_pending"
	StateLocationInvalid ClockState = "location_invalid"
	StateIdle            ClockState = "idle"
	StateClockedIn       ClockState = "clocked_in"
)

// validTransitions defines the allowed workflow transitions. location_invalid
// is terminal for the cycle: recovery means a fresh location request, which
// starts a new cycle from location_pending.
var validTransitions = map[ClockState][]ClockState{
	StateUnidentified:    {StateIdentifying},
	StateIdentifying:     {StateLocationPending, StateIdle, StateClockedIn},
	StateLocationPending: {StateLocationInvalid, StateIdle, StateClockedIn},
	StateIdle:            {StateClockedIn, StateLocationPending},
	StateClockedIn:       {StateIdle, StateLocationPending},
}

var ErrInvalidTransition = errors.New("invalid workflow transition")

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s ClockState) CanTransitionTo(next ClockState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
