package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"backend-panoratravel/internal/db"
	"backend-panoratravel/internal/shared/ident"
	"backend-panoratravel/internal/shared/recon"

	"github.com/redis/go-redis/v9"
)

// ErrConfirmReplace is returned when a payload carries an explicitly empty
// collection without confirm_replace. Handlers translate it into a 422 so the
// admin UI can prompt before wiping a collection.
var ErrConfirmReplace = errors.New("empty collection wipes all records; set confirm_replace to proceed")

const snapshotCacheKey = "content:snapshot"

type Service struct {
	db          db.Querier
	ids         *ident.Resolver
	cache       *redis.Client
	snapshotTTL time.Duration
}

func NewService(db db.Querier, cache *redis.Client, snapshotTTL time.Duration) *Service {
	return &Service{
		db:          db,
		ids:         ident.NewResolver(),
		cache:       cache,
		snapshotTTL: snapshotTTL,
	}
}

// SaveAll applies one reconciliation pass per collection present in the
// payload: delete ids missing from the incoming list, then upsert every
// incoming record (incoming fields fully replace stored ones). Collections
// are written sequentially; the first failure aborts with the collection
// named and no rollback of collections already written; the admin retries
// the whole save.
func (s *Service) SaveAll(ctx context.Context, p SavePayload) (SaveSummary, error) {
	if err := s.checkDestructive(p); err != nil {
		return nil, err
	}

	summary := SaveSummary{}

	if p.SiteConfig != nil {
		if err := s.saveSiteConfig(ctx, *p.SiteConfig); err != nil {
			return summary, fmt.Errorf("siteConfig: %w", err)
		}
		summary["siteConfig"] = CollectionResult{Upserted: 1}
	}

	if p.FAQ != nil {
		res, err := s.saveFAQ(ctx, *p.FAQ)
		if err != nil {
			return summary, fmt.Errorf("faq: %w", err)
		}
		summary["faq"] = res
	}

	if p.Destinations != nil {
		res, err := s.saveDestinations(ctx, *p.Destinations)
		if err != nil {
			return summary, fmt.Errorf("destinations: %w", err)
		}
		summary["destinations"] = res
	}

	if p.Tours != nil {
		res, err := s.saveTours(ctx, *p.Tours)
		if err != nil {
			return summary, fmt.Errorf("tours: %w", err)
		}
		summary["tours"] = res
	}

	if p.Fleet != nil {
		res, err := s.saveFleet(ctx, *p.Fleet)
		if err != nil {
			return summary, fmt.Errorf("fleet: %w", err)
		}
		summary["fleet"] = res
	}

	s.invalidateSnapshot(ctx)
	return summary, nil
}

func (s *Service) checkDestructive(p SavePayload) error {
	if p.ConfirmReplace {
		return nil
	}
	if p.FAQ != nil && len(*p.FAQ) == 0 {
		return fmt.Errorf("faq: %w", ErrConfirmReplace)
	}
	if p.Destinations != nil && len(*p.Destinations) == 0 {
		return fmt.Errorf("destinations: %w", ErrConfirmReplace)
	}
	if p.Tours != nil && len(*p.Tours) == 0 {
		return fmt.Errorf("tours: %w", ErrConfirmReplace)
	}
	if p.Fleet != nil && len(*p.Fleet) == 0 {
		return fmt.Errorf("fleet: %w", ErrConfirmReplace)
	}
	return nil
}

func (s *Service) saveSiteConfig(ctx context.Context, cfg SiteConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO site_config (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data
	`, data)
	return err
}

func (s *Service) saveFAQ(ctx context.Context, incoming []FAQItem) (CollectionResult, error) {
	for i := range incoming {
		incoming[i].ID = s.ids.Resolve(incoming[i].ID, incoming[i].Question)
	}
	existing, err := s.existingIDs(ctx, "faq_items")
	if err != nil {
		return CollectionResult{}, err
	}

	changes := recon.Diff(existing, ids(incoming, func(f FAQItem) string { return f.ID }), keyIdentity)
	res := CollectionResult{Deleted: len(changes.DeleteIDs)}
	if err := s.deleteNotInSet(ctx, "faq_items", changes.DeleteIDs); err != nil {
		return res, err
	}
	for _, f := range incoming {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO faq_items (id, question, answer, position)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO UPDATE SET
				question=EXCLUDED.question, answer=EXCLUDED.answer, position=EXCLUDED.position
		`, f.ID, f.Question, f.Answer, f.Position); err != nil {
			return res, err
		}
		res.Upserted++
	}
	return res, nil
}

func (s *Service) saveDestinations(ctx context.Context, incoming []Destination) (CollectionResult, error) {
	for i := range incoming {
		incoming[i].ID = s.ids.Resolve(incoming[i].ID, incoming[i].Name)
	}
	existing, err := s.existingIDs(ctx, "destinations")
	if err != nil {
		return CollectionResult{}, err
	}

	changes := recon.Diff(existing, ids(incoming, func(d Destination) string { return d.ID }), keyIdentity)
	res := CollectionResult{Deleted: len(changes.DeleteIDs)}
	if err := s.deleteNotInSet(ctx, "destinations", changes.DeleteIDs); err != nil {
		return res, err
	}
	for _, d := range incoming {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO destinations (id, name, tagline, description, region, image, highlights, best_time)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO UPDATE SET
				name=EXCLUDED.name, tagline=EXCLUDED.tagline, description=EXCLUDED.description,
				region=EXCLUDED.region, image=EXCLUDED.image, highlights=EXCLUDED.highlights,
				best_time=EXCLUDED.best_time
		`, d.ID, d.Name, d.Tagline, d.Description, d.Region, d.Image, d.Highlights, d.BestTime); err != nil {
			return res, err
		}
		res.Upserted++
	}
	return res, nil
}

func (s *Service) saveTours(ctx context.Context, incoming []Tour) (CollectionResult, error) {
	for i := range incoming {
		incoming[i].ID = s.ids.Resolve(incoming[i].ID, incoming[i].Title)
	}
	existing, err := s.existingIDs(ctx, "tours")
	if err != nil {
		return CollectionResult{}, err
	}

	changes := recon.Diff(existing, ids(incoming, func(t Tour) string { return t.ID }), keyIdentity)
	res := CollectionResult{Deleted: len(changes.DeleteIDs)}
	if err := s.deleteNotInSet(ctx, "tours", changes.DeleteIDs); err != nil {
		return res, err
	}
	for _, t := range incoming {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO tours (id, title, summary, duration_days, price_from, image, highlights, destination_ids)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO UPDATE SET
				title=EXCLUDED.title, summary=EXCLUDED.summary, duration_days=EXCLUDED.duration_days,
				price_from=EXCLUDED.price_from, image=EXCLUDED.image, highlights=EXCLUDED.highlights,
				destination_ids=EXCLUDED.destination_ids
		`, t.ID, t.Title, t.Summary, t.DurationDays, t.PriceFrom, t.Image, t.Highlights, t.DestinationIDs); err != nil {
			return res, err
		}
		res.Upserted++
	}
	return res, nil
}

func (s *Service) saveFleet(ctx context.Context, incoming []Vehicle) (CollectionResult, error) {
	for i := range incoming {
		incoming[i].ID = s.ids.Resolve(incoming[i].ID, incoming[i].Name)
	}
	existing, err := s.existingIDs(ctx, "fleet")
	if err != nil {
		return CollectionResult{}, err
	}

	changes := recon.Diff(existing, ids(incoming, func(v Vehicle) string { return v.ID }), keyIdentity)
	res := CollectionResult{Deleted: len(changes.DeleteIDs)}
	if err := s.deleteNotInSet(ctx, "fleet", changes.DeleteIDs); err != nil {
		return res, err
	}
	for _, v := range incoming {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO fleet (id, name, type, seats, price_per_day, image, features)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE SET
				name=EXCLUDED.name, type=EXCLUDED.type, seats=EXCLUDED.seats,
				price_per_day=EXCLUDED.price_per_day, image=EXCLUDED.image, features=EXCLUDED.features
		`, v.ID, v.Name, v.Type, v.Seats, v.PricePerDay, v.Image, v.Features); err != nil {
			return res, err
		}
		res.Upserted++
	}
	return res, nil
}

func (s *Service) existingIDs(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// deleteNotInSet removes rows dropped from the incoming collection. Deletes
// run before upserts so a reused id cannot collide.
func (s *Service) deleteNotInSet(ctx context.Context, table string, deleteIDs []string) error {
	if len(deleteIDs) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = ANY($1)`, deleteIDs)
	return err
}

// Snapshot assembles the full published content document, serving from redis
// when a fresh copy is cached.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, snapshotCacheKey).Bytes()
		if err == nil {
			var snap Snapshot
			if json.Unmarshal(cached, &snap) == nil {
				return snap, nil
			}
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.cache.Set(ctx, snapshotCacheKey, data, s.snapshotTTL).Err(); err != nil {
				log.Printf("snapshot cache set error: %v", err)
			}
		}
	}
	return snap, nil
}

func (s *Service) loadSnapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		SiteConfig:   SiteConfig{},
		FAQ:          []FAQItem{},
		Destinations: []Destination{},
		Tours:        []Tour{},
		Fleet:        []Vehicle{},
	}

	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM site_config WHERE id=1`).Scan(&raw)
	if err == nil {
		_ = json.Unmarshal(raw, &snap.SiteConfig)
	}

	rows, err := s.db.Query(ctx, `SELECT id, question, answer, position FROM faq_items ORDER BY position`)
	if err != nil {
		return Snapshot{}, err
	}
	for rows.Next() {
		var f FAQItem
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Position); err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		snap.FAQ = append(snap.FAQ, f)
	}
	rows.Close()

	rows, err = s.db.Query(ctx, `SELECT id, name, tagline, description, region, image, highlights, best_time FROM destinations ORDER BY name`)
	if err != nil {
		return Snapshot{}, err
	}
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Tagline, &d.Description, &d.Region, &d.Image, &d.Highlights, &d.BestTime); err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		snap.Destinations = append(snap.Destinations, d)
	}
	rows.Close()

	rows, err = s.db.Query(ctx, `SELECT id, title, summary, duration_days, price_from, image, highlights, destination_ids FROM tours ORDER BY title`)
	if err != nil {
		return Snapshot{}, err
	}
	for rows.Next() {
		var t Tour
		if err := rows.Scan(&t.ID, &t.Title, &t.Summary, &t.DurationDays, &t.PriceFrom, &t.Image, &t.Highlights, &t.DestinationIDs); err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		snap.Tours = append(snap.Tours, t)
	}
	rows.Close()

	rows, err = s.db.Query(ctx, `SELECT id, name, type, seats, price_per_day, image, features FROM fleet ORDER BY name`)
	if err != nil {
		return Snapshot{}, err
	}
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.Seats, &v.PricePerDay, &v.Image, &v.Features); err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		snap.Fleet = append(snap.Fleet, v)
	}
	rows.Close()

	return snap, nil
}

func (s *Service) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, snapshotCacheKey).Err(); err != nil {
		log.Printf("snapshot cache invalidate error: %v", err)
	}
}

func ids[T any](records []T, key func(T) string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, key(r))
	}
	return out
}

func keyIdentity(id string) string { return id }
