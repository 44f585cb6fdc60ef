package planner

import "time"

// Plan is a draft itinerary an operator builds against an inquiry. Days and
// extras are stored denormalized as JSONB; plans have a single writer so
// read-modify-write is fine.
type Plan struct {
	ID        string    `json:"id"`
	InquiryID string    `json:"inquiry_id"`
	Title     string    `json:"title"`
	Days      []Day     `json:"days"`
	Extras    []Extra   `json:"extras"`
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Day struct {
	DayIndex   int        `json:"day_index"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Cost          float64 `json:"cost"`
	DurationLabel string  `json:"duration_label"`
}

// Extra is a whole-trip add-on service (airport pickup, guide) priced once,
// outside any day.
type Extra struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Cost  float64 `json:"cost"`
}
