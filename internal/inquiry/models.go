package inquiry

import "time"

// Inquiry is a visitor's trip request from the planner form. Records are
// immutable after submission; only the status moves.
type Inquiry struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PassengerCount int       `json:"passenger_count"`
	TravelDate     string    `json:"travel_date"`
	VehiclePref    string    `json:"vehicle_pref"`
	DestinationIDs []string  `json:"destination_ids"`
	AddOns         []string  `json:"add_ons"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	StatusNew      = "new"
	StatusPlanning = "planning"
	StatusQuoted   = "quoted"
	StatusClosed   = "closed"
)

type StatusUpdate struct {
	Status string `json:"status"`
}
