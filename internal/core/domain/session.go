package domain

import (
	"errors"
	"time"
)

var ErrNoOpenSession = errors.New("no open session")
var ErrSessionAlreadyOpen = errors.New("session already open")
var ErrInvalidDateRange = errors.New("invalid date range")

// Session is one clock-in/clock-out record. A nil ClockOut marks the session
// open. At most one open session per number is expected; the ledger itself
// does not enforce it (the controller check is advisory), so clock-out closes
// every open row it finds.
type Session struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty"`
	SubContractor string     `json:"sub_contractor" bson:"sub_contractor"`
	Name          string     `json:"name" bson:"employee"`
	Number        string     `json:"number" bson:"number"`
	ClockIn       time.Time  `json:"clock_in" bson:"clock_in"`
	ClockOut      *time.Time `json:"clock_out,omitempty" bson:"clock_out,omitempty"`
	Lat           float64    `json:"lat" bson:"lat"`
	Lon           float64    `json:"lon" bson:"lon"`
	DeviceID      string     `json:"-" bson:"device_id"`
}

// Open reports whether the session has not been clocked out yet.
func (s *Session) Open() bool {
	return s.ClockOut == nil
}
