package review

import (
	"context"
	"encoding/json"
	"errors"

	"backend-panoratravel/internal/db"
	"backend-panoratravel/internal/stream"

	"github.com/google/uuid"
)

// ErrRating is returned when a submission carries a rating outside 1..5.
var ErrRating = errors.New("rating must be between 1 and 5")

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Submit(ctx context.Context, input Review) (Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return Review{}, ErrRating
	}
	input.ID = uuid.NewString()
	input.Approved = false

	row := s.db.QueryRow(ctx, `
		INSERT INTO reviews (id, author, country, rating, comment, approved)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.Author, input.Country, input.Rating, input.Comment, input.Approved)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Review{}, err
	}

	if s.hub != nil {
		event, _ := json.Marshal(map[string]any{"type": "review.created", "review": input})
		s.hub.Broadcast("reviews", event)
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, approvedOnly bool) ([]Review, error) {
	query := `SELECT id, author, country, rating, comment, approved, created_at FROM reviews ORDER BY created_at DESC`
	if approvedOnly {
		query = `SELECT id, author, country, rating, comment, approved, created_at FROM reviews WHERE approved ORDER BY created_at DESC`
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Author, &r.Country, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Service) Approve(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE reviews SET approved=true WHERE id=$1`, id)
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	return err
}
