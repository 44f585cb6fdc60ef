package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"backend-panoratravel/internal/attraction"
	"backend-panoratravel/internal/config"
	"backend-panoratravel/internal/content"
	"backend-panoratravel/internal/db"
)

// SeedDoc is the JSON document the seed tool loads. Collections are optional;
// missing keys are skipped.
type SeedDoc struct {
	SiteConfig   content.SiteConfig      `json:"siteConfig"`
	FAQ          []content.FAQItem       `json:"faq"`
	Destinations []content.Destination   `json:"destinations"`
	Tours        []content.Tour          `json:"tours"`
	Fleet        []content.Vehicle       `json:"fleet"`
	Attractions  []attraction.Attraction `json:"attractions"`
}

func main() {
	cfg := config.Load()
	if cfg.SeedFile == "" {
		log.Fatal("SEED_FILE not set")
	}

	data, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var doc SeedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	pool, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	inserted, err := seed(context.Background(), pool, doc)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed complete: %d records inserted", inserted)
}

// seed inserts every record whose id is not already present. Existing rows
// are left untouched so the tool is safe to re-run; it is a single-run tool
// and does not guard against concurrent writers.
func seed(ctx context.Context, q db.Querier, doc SeedDoc) (int, error) {
	inserted := 0

	if doc.SiteConfig != nil {
		exists, err := rowExists(ctx, q, `SELECT EXISTS (SELECT 1 FROM site_config WHERE id=1)`)
		if err != nil {
			return inserted, err
		}
		if !exists {
			data, err := json.Marshal(doc.SiteConfig)
			if err != nil {
				return inserted, err
			}
			if _, err := q.Exec(ctx, `INSERT INTO site_config (id, data) VALUES (1, $1)`, data); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	for _, f := range doc.FAQ {
		n, err := insertUnlessExists(ctx, q, "faq_items", f.ID, `
			INSERT INTO faq_items (id, question, answer, position) VALUES ($1,$2,$3,$4)
		`, f.ID, f.Question, f.Answer, f.Position)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	for _, d := range doc.Destinations {
		n, err := insertUnlessExists(ctx, q, "destinations", d.ID, `
			INSERT INTO destinations (id, name, tagline, description, region, image, highlights, best_time)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, d.ID, d.Name, d.Tagline, d.Description, d.Region, d.Image, d.Highlights, d.BestTime)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	for _, t := range doc.Tours {
		n, err := insertUnlessExists(ctx, q, "tours", t.ID, `
			INSERT INTO tours (id, title, summary, duration_days, price_from, image, highlights, destination_ids)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, t.ID, t.Title, t.Summary, t.DurationDays, t.PriceFrom, t.Image, t.Highlights, t.DestinationIDs)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	for _, v := range doc.Fleet {
		n, err := insertUnlessExists(ctx, q, "fleet", v.ID, `
			INSERT INTO fleet (id, name, type, seats, price_per_day, image, features)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, v.ID, v.Name, v.Type, v.Seats, v.PricePerDay, v.Image, v.Features)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	for _, a := range doc.Attractions {
		n, err := insertUnlessExists(ctx, q, "attractions", a.ID, `
			INSERT INTO attractions (id, name, description, district, province, categories, image, highlights, best_time, entry_fee, lat, lng, x, y)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		`, a.ID, a.Name, a.Description, a.District, a.Province, a.Categories,
			a.Image, a.Highlights, a.BestTime, a.EntryFee, a.Lat, a.Lng, a.X, a.Y)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	return inserted, nil
}

func insertUnlessExists(ctx context.Context, q db.Querier, table, id, insertSQL string, args ...any) (int, error) {
	exists, err := rowExists(ctx, q, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id=$1)`, id)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}
	if _, err := q.Exec(ctx, insertSQL, args...); err != nil {
		return 0, err
	}
	return 1, nil
}

func rowExists(ctx context.Context, q db.Querier, query string, args ...any) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
