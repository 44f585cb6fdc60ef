package attraction

import (
	"context"
	"io"

	"backend-panoratravel/internal/db"
	"backend-panoratravel/internal/shared/ident"
	"backend-panoratravel/internal/shared/recon"
)

type Service struct {
	db  db.Querier
	ids *ident.Resolver

	// substituted for rows without a district or coordinates; see RowDefaults
	fallbackDistrict string
	fallbackLat      float64
	fallbackLng      float64
}

func NewService(db db.Querier, fallbackDistrict string, fallbackLat, fallbackLng float64) *Service {
	return &Service{
		db:               db,
		ids:              ident.NewResolver(),
		fallbackDistrict: fallbackDistrict,
		fallbackLat:      fallbackLat,
		fallbackLng:      fallbackLng,
	}
}

const attractionColumns = `id, name, description, district, province, categories, image, highlights, best_time, entry_fee, lat, lng, x, y`

func (s *Service) List(ctx context.Context) ([]Attraction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+attractionColumns+`
		FROM attractions ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attraction
	for rows.Next() {
		var a Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.District, &a.Province, &a.Categories,
			&a.Image, &a.Highlights, &a.BestTime, &a.EntryFee, &a.Lat, &a.Lng, &a.X, &a.Y); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Attraction, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+attractionColumns+`
		FROM attractions WHERE id=$1
	`, id)
	var a Attraction
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.District, &a.Province, &a.Categories,
		&a.Image, &a.Highlights, &a.BestTime, &a.EntryFee, &a.Lat, &a.Lng, &a.X, &a.Y); err != nil {
		return Attraction{}, err
	}
	return a, nil
}

func (s *Service) Upsert(ctx context.Context, a Attraction) (Attraction, error) {
	a.ID = s.ids.Resolve(a.ID, a.Name)
	_, err := s.db.Exec(ctx, `
		INSERT INTO attractions (`+attractionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description, district=EXCLUDED.district,
			province=EXCLUDED.province, categories=EXCLUDED.categories, image=EXCLUDED.image,
			highlights=EXCLUDED.highlights, best_time=EXCLUDED.best_time, entry_fee=EXCLUDED.entry_fee,
			lat=EXCLUDED.lat, lng=EXCLUDED.lng, x=EXCLUDED.x, y=EXCLUDED.y
	`, a.ID, a.Name, a.Description, a.District, a.Province, a.Categories,
		a.Image, a.Highlights, a.BestTime, a.EntryFee, a.Lat, a.Lng, a.X, a.Y)
	if err != nil {
		return Attraction{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM attractions WHERE id=$1`, id)
	return err
}

// ImportCSV merges an uploaded CSV into the attractions collection: rows with
// an id matching an existing record update it, other rows insert with a
// generated id. Records absent from the file are left alone: the CSV import
// is merge-only, unlike the admin full-content save which replaces whole
// collections.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, districtFallback string) (ImportResult, error) {
	incoming, err := ReadCSV(r, RowDefaults{
		District: districtFallback,
		Lat:      s.fallbackLat,
		Lng:      s.fallbackLng,
	})
	if err != nil {
		return ImportResult{}, err
	}
	for i := range incoming {
		incoming[i].ID = s.ids.Resolve(incoming[i].ID, incoming[i].Name)
	}

	existing, err := s.List(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	changes := recon.Diff(existing, incoming, func(a Attraction) string { return a.ID })

	var result ImportResult
	for _, a := range changes.Update {
		if _, err := s.Upsert(ctx, a); err != nil {
			return result, err
		}
		result.Updated++
	}
	for _, a := range changes.Insert {
		if _, err := s.Upsert(ctx, a); err != nil {
			return result, err
		}
		result.Inserted++
	}
	return result, nil
}

// ExportCSV streams every attraction in the fixed export column order.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	attractions, err := s.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, attractions)
}

// Nearby ranks all stored attractions by distance from the given origin.
func (s *Service) Nearby(ctx context.Context, lat, lng float64, k int) ([]Ranked, error) {
	candidates, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return RankNearby(Origin{Lat: lat, Lng: lng}, candidates, k), nil
}
