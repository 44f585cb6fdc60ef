package blog

import (
	"context"
	"time"

	"backend-panoratravel/internal/db"
	"backend-panoratravel/internal/shared/ident"
)

const postColumns = `id, title, excerpt, body, image, tags, published, created_at, updated_at`

type Service struct {
	db  db.Querier
	ids *ident.Resolver
}

func NewService(db db.Querier) *Service {
	return &Service{db: db, ids: ident.NewResolver()}
}

func (s *Service) Create(ctx context.Context, input Post) (Post, error) {
	input.ID = s.ids.Resolve(input.ID, input.Title)
	if input.Tags == nil {
		input.Tags = []string{}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO blog_posts (id, title, excerpt, body, image, tags, published)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.Title, input.Excerpt, input.Body, input.Image, input.Tags, input.Published)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Post{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, publishedOnly bool) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM blog_posts WHERE published ORDER BY created_at DESC`
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.Image, &p.Tags, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	var p Post
	row := s.db.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id=$1`, id)
	if err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.Image, &p.Tags, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Update patches non-empty fields; Published always follows the request body
// so posts can be unpublished.
func (s *Service) Update(ctx context.Context, id string, patch Post) (Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if patch.Title != "" {
		post.Title = patch.Title
	}
	if patch.Excerpt != "" {
		post.Excerpt = patch.Excerpt
	}
	if patch.Body != "" {
		post.Body = patch.Body
	}
	if patch.Image != "" {
		post.Image = patch.Image
	}
	if patch.Tags != nil {
		post.Tags = patch.Tags
	}
	post.Published = patch.Published
	post.UpdatedAt = time.Now()

	_, err = s.db.Exec(ctx, `
		UPDATE blog_posts
		SET title=$2, excerpt=$3, body=$4, image=$5, tags=$6, published=$7, updated_at=$8
		WHERE id=$1
	`, post.ID, post.Title, post.Excerpt, post.Body, post.Image, post.Tags, post.Published, post.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	return post, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM blog_posts WHERE id=$1`, id)
	return err
}
