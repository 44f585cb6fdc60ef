package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-panoratravel/internal/db"
	"backend-panoratravel/internal/stream"

	"github.com/google/uuid"
)

// ErrTransition is returned for a status move the workflow does not allow.
var ErrTransition = errors.New("status transition not allowed")

// transitions is the forward-only inquiry workflow.
var transitions = map[string][]string{
	StatusNew:      {StatusPlanning, StatusClosed},
	StatusPlanning: {StatusQuoted, StatusClosed},
	StatusQuoted:   {StatusClosed},
	StatusClosed:   {},
}

const inquiryColumns = `id, name, email, phone, passenger_count, travel_date, vehicle_pref, destination_ids, add_ons, notes, status, created_at`

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Submit stores a new inquiry and announces it on the admin feed.
func (s *Service) Submit(ctx context.Context, input Inquiry) (Inquiry, error) {
	input.ID = uuid.NewString()
	input.Status = StatusNew
	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO inquiries (`+inquiryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING status, created_at
	`, input.ID, input.Name, input.Email, input.Phone, input.PassengerCount,
		input.TravelDate, input.VehiclePref, input.DestinationIDs, input.AddOns,
		input.Notes, input.Status, input.CreatedAt)
	if err := row.Scan(&input.Status, &input.CreatedAt); err != nil {
		return Inquiry{}, err
	}

	if s.hub != nil {
		event, _ := json.Marshal(map[string]any{"type": "inquiry.created", "inquiry": input})
		s.hub.Broadcast("inquiries", event)
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, status string) ([]Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + inquiryColumns + ` FROM inquiries WHERE status=$1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Inquiry
	for rows.Next() {
		var q Inquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.PassengerCount,
			&q.TravelDate, &q.VehiclePref, &q.DestinationIDs, &q.AddOns,
			&q.Notes, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Inquiry, error) {
	var q Inquiry
	row := s.db.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id=$1`, id)
	err := row.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.PassengerCount,
		&q.TravelDate, &q.VehiclePref, &q.DestinationIDs, &q.AddOns,
		&q.Notes, &q.Status, &q.CreatedAt)
	if err != nil {
		return Inquiry{}, err
	}
	return q, nil
}

// UpdateStatus moves an inquiry one step forward in the workflow.
func (s *Service) UpdateStatus(ctx context.Context, id, next string) (Inquiry, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Inquiry{}, err
	}
	if !allowed(current.Status, next) {
		return Inquiry{}, fmt.Errorf("%s -> %s: %w", current.Status, next, ErrTransition)
	}

	if _, err := s.db.Exec(ctx, `UPDATE inquiries SET status=$2 WHERE id=$1`, id, next); err != nil {
		return Inquiry{}, err
	}
	current.Status = next

	if s.hub != nil {
		event, _ := json.Marshal(map[string]any{"type": "inquiry.status", "id": id, "status": next})
		s.hub.Broadcast("inquiries", event)
	}
	return current, nil
}

func allowed(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
