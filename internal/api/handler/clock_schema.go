package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type locationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type clockStatusRequest struct {
	SubContractor string           `json:"sub_contractor" validate:"required"`
	Location      *locationRequest `json:"location"`
}

type clockRegisterRequest struct {
	SubContractor string           `json:"sub_contractor" validate:"required"`
	Number        string           `json:"number"         validate:"required"`
	Name          string           `json:"name"`
	Location      *locationRequest `json:"location"`
}

type clockActionRequest struct {
	SubContractor string           `json:"sub_contractor" validate:"required"`
	Location      *locationRequest `json:"location"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type workerResponse struct {
	SubContractor string `json:"sub_contractor"`
	Name          string `json:"name"`
	Number        string `json:"number"`
}

type clockContextResponse struct {
	State     string           `json:"state"`
	Worker    *workerResponse  `json:"worker,omitempty"`
	Site      string           `json:"site,omitempty"`
	Location  *locationRequest `json:"location,omitempty"`
	OpenSince *time.Time       `json:"open_since,omitempty"`
	ActionAt  *time.Time       `json:"action_at,omitempty"`
}
