package models

import "time"

const (
	AlertSourceSOS         = "sos"
	AlertSourceCompartment = "compartment"
	AlertSourceFeedback    = "feedback"

	AlertUnsafe = "unsafe"
	AlertReject = "reject"
	AlertSent   = "sent"
)

// Alert is anything the railway police desk should see on the live stream.
type Alert struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"time"`
	Source      string    `json:"source"`
	Username    string    `json:"username,omitempty"`
	Train       string    `json:"train,omitempty"`
	Compartment string    `json:"compartment,omitempty"`
	Station     string    `json:"station,omitempty"`
	Lat         string    `json:"lat,omitempty"`
	Lon         string    `json:"lon,omitempty"`
	PeopleCount *int      `json:"people_count,omitempty"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Image       string    `json:"image,omitempty"`
}
