package planner

import (
	"context"
	"encoding/json"
	"time"

	"backend-panoratravel/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db      db.Querier
	baseURL string
}

// NewService takes the public base URL used for the document QR link.
func NewService(db db.Querier, baseURL string) *Service {
	return &Service{db: db, baseURL: baseURL}
}

func (s *Service) Create(ctx context.Context, input Plan) (Plan, error) {
	input.ID = uuid.NewString()
	if input.Days == nil {
		input.Days = []Day{}
	}
	if input.Extras == nil {
		input.Extras = []Extra{}
	}

	days, err := json.Marshal(input.Days)
	if err != nil {
		return Plan{}, err
	}
	extras, err := json.Marshal(input.Extras)
	if err != nil {
		return Plan{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO plans (id, inquiry_id, title, days, extras, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.InquiryID, input.Title, days, extras, input.Notes, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Plan{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, inquiry_id, title, days, extras, notes, created_by, created_at, updated_at
		FROM plans WHERE id=$1
	`, id)

	var p Plan
	var days, extras []byte
	if err := row.Scan(&p.ID, &p.InquiryID, &p.Title, &days, &extras, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Plan{}, err
	}
	if err := json.Unmarshal(days, &p.Days); err != nil {
		return Plan{}, err
	}
	if err := json.Unmarshal(extras, &p.Extras); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Plan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, inquiry_id, title, days, extras, notes, created_by, created_at, updated_at
		FROM plans ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var days, extras []byte
		if err := rows.Scan(&p.ID, &p.InquiryID, &p.Title, &days, &extras, &p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(days, &p.Days); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(extras, &p.Extras); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Update patches the stored plan: non-empty scalars and non-nil slices from
// the patch replace the stored values.
func (s *Service) Update(ctx context.Context, id string, patch Plan) (Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if patch.Title != "" {
		plan.Title = patch.Title
	}
	if patch.Notes != "" {
		plan.Notes = patch.Notes
	}
	if patch.Days != nil {
		plan.Days = patch.Days
	}
	if patch.Extras != nil {
		plan.Extras = patch.Extras
	}
	plan.UpdatedAt = time.Now()

	days, err := json.Marshal(plan.Days)
	if err != nil {
		return Plan{}, err
	}
	extras, err := json.Marshal(plan.Extras)
	if err != nil {
		return Plan{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE plans
		SET title=$2, days=$3, extras=$4, notes=$5, updated_at=$6
		WHERE id=$1
	`, plan.ID, plan.Title, days, extras, plan.Notes, plan.UpdatedAt)
	if err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	return err
}

// FromInquiry seeds a draft plan with one empty day per requested destination.
func (s *Service) FromInquiry(ctx context.Context, inquiryID, createdBy string) (Plan, error) {
	var name string
	var destinationIDs []string
	row := s.db.QueryRow(ctx, `SELECT name, destination_ids FROM inquiries WHERE id=$1`, inquiryID)
	if err := row.Scan(&name, &destinationIDs); err != nil {
		return Plan{}, err
	}

	titles := map[string]string{}
	if len(destinationIDs) > 0 {
		rows, err := s.db.Query(ctx, `SELECT id, name FROM destinations WHERE id = ANY($1)`, destinationIDs)
		if err != nil {
			return Plan{}, err
		}
		for rows.Next() {
			var id, destName string
			if err := rows.Scan(&id, &destName); err != nil {
				rows.Close()
				return Plan{}, err
			}
			titles[id] = destName
		}
		rows.Close()
	}

	days := make([]Day, 0, len(destinationIDs))
	for i, destID := range destinationIDs {
		title := titles[destID]
		if title == "" {
			title = destID
		}
		days = append(days, Day{DayIndex: i + 1, Title: title, Activities: []Activity{}})
	}

	return s.Create(ctx, Plan{
		InquiryID: inquiryID,
		Title:     "Trip for " + name,
		Days:      days,
		CreatedBy: createdBy,
	})
}
