package domain

import "errors"

var ErrWorkerNotFound = errors.New("worker not found")
var ErrWorkerExists = errors.New("worker already exists")
var ErrSubContractorRequired = errors.New("subcontractor name is required")
var ErrNumberRequired = errors.New("phone number is required")
var ErrNameRequired = errors.New("full name is required")
var ErrLocationRequired = errors.New("location reading is required")

// Worker is a subcontractor employee. Number is the natural key; DeviceID
// holds the last device the worker identified from and is rebound whenever a
// known number shows up on a new device.
type Worker struct {
	SubContractor string `json:"sub_contractor" bson:"sub_contractor"`
	Name          string `json:"name" bson:"employee"`
	Number        string `json:"number" bson:"number"`
	DeviceID      string `json:"-" bson:"device_id"`
}
