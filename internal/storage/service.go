package storage

import (
	"context"
	"time"

	"backend-panoratravel/internal/db"

	"github.com/google/uuid"
)

// MediaObject is a registered media path. Binary handling lives with the CDN;
// this registry only tracks where uploads ended up so the admin picker can
// list them per folder.
type MediaObject struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Folder    string    `json:"folder"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Register(ctx context.Context, userID, url, folder, kind string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO media_objects (id, user_id, url, folder, kind)
		VALUES ($1,$2,$3,$4,$5)
	`, id, userID, url, folder, kind)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) List(ctx context.Context, folder string) ([]MediaObject, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, folder, kind, created_at
		FROM media_objects WHERE folder=$1
		ORDER BY created_at DESC
	`, folder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []MediaObject
	for rows.Next() {
		var m MediaObject
		if err := rows.Scan(&m.ID, &m.UserID, &m.URL, &m.Folder, &m.Kind, &m.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, m)
	}
	return objects, rows.Err()
}
