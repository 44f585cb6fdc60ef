package review

import "time"

// Review is a visitor testimonial. Submissions start unapproved and only show
// on the public site once an operator approves them.
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Country   string    `json:"country"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
