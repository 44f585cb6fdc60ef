package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
)

var errContent = errors.New("content error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectEmptySnapshot(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT data FROM site_config`).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`{"brand":"PanoraTravel"}`)))
	mock.ExpectQuery(`SELECT id, question, answer, position FROM faq_items`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "question", "answer", "position"}))
	mock.ExpectQuery(`SELECT id, name, tagline, description, region, image, highlights, best_time FROM destinations`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "tagline", "description", "region", "image", "highlights", "best_time"}))
	mock.ExpectQuery(`SELECT id, title, summary, duration_days, price_from, image, highlights, destination_ids FROM tours`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "summary", "duration_days", "price_from", "image", "highlights", "destination_ids"}))
	mock.ExpectQuery(`SELECT id, name, type, seats, price_per_day, image, features FROM fleet`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "type", "seats", "price_per_day", "image", "features"}))
}

func TestSaveAllReconcilesFAQ(t *testing.T) {
	mock := newMock(t)

	// "old-question" is dropped from the incoming list and must be deleted.
	mock.ExpectQuery(`SELECT id FROM faq_items`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("old-question").AddRow("what-to-pack"))
	mock.ExpectExec(`DELETE FROM faq_items WHERE id = ANY`).
		WithArgs([]string{"old-question"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO faq_items`).
		WithArgs("what-to-pack", "What should I pack?", "Light clothes.", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO faq_items`).
		WithArgs(pgxmock.AnyArg(), "How do I book?", "Use the planner.", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, nil, time.Minute)
	faq := []FAQItem{
		{ID: "what-to-pack", Question: "What should I pack?", Answer: "Light clothes.", Position: 1},
		{Question: "How do I book?", Answer: "Use the planner.", Position: 2},
	}
	summary, err := svc.SaveAll(context.Background(), SavePayload{FAQ: &faq})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := summary["faq"]; got.Deleted != 1 || got.Upserted != 2 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveAllEmptyCollectionNeedsConfirm(t *testing.T) {
	mock := newMock(t)

	svc := NewService(mock, nil, time.Minute)
	empty := []Destination{}
	_, err := svc.SaveAll(context.Background(), SavePayload{Destinations: &empty})
	if !errors.Is(err, ErrConfirmReplace) {
		t.Fatalf("expected ErrConfirmReplace, got %v", err)
	}

	// No queries may run before the guard trips.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveAllConfirmedEmptyDeletesAll(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id FROM destinations`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("ella").AddRow("kandy"))
	mock.ExpectExec(`DELETE FROM destinations WHERE id = ANY`).
		WithArgs([]string{"ella", "kandy"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	svc := NewService(mock, nil, time.Minute)
	empty := []Destination{}
	summary, err := svc.SaveAll(context.Background(), SavePayload{Destinations: &empty, ConfirmReplace: true})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := summary["destinations"]; got.Deleted != 2 || got.Upserted != 0 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveAllStopsAtFirstFailure(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id FROM faq_items`).WillReturnError(errContent)

	svc := NewService(mock, nil, time.Minute)
	faq := []FAQItem{{ID: "q1", Question: "Q", Answer: "A"}}
	tours := []Tour{{ID: "classic", Title: "Classic"}}
	_, err := svc.SaveAll(context.Background(), SavePayload{FAQ: &faq, Tours: &tours})
	if err == nil || !strings.HasPrefix(err.Error(), "faq:") {
		t.Fatalf("expected faq-prefixed error, got %v", err)
	}

	// Tours must not have been touched after the faq pass failed.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveSiteConfig(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO site_config`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, nil, time.Minute)
	cfg := SiteConfig{"brand": "PanoraTravel", "phone": "+94 11 234 5678"}
	summary, err := svc.SaveAll(context.Background(), SavePayload{SiteConfig: &cfg})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := summary["siteConfig"]; got.Upserted != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestSnapshotCachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	mock := newMock(t)
	expectEmptySnapshot(mock)

	svc := NewService(mock, cache, time.Minute)
	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.SiteConfig["brand"] != "PanoraTravel" {
		t.Fatalf("unexpected site config: %+v", snap.SiteConfig)
	}
	if !mr.Exists(snapshotCacheKey) {
		t.Fatalf("expected snapshot cached under %q", snapshotCacheKey)
	}

	// Second read is served from the cache; no further db expectations exist.
	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("cached snapshot: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveInvalidatesSnapshotCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	if err := mr.Set(snapshotCacheKey, `{}`); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO site_config`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, cache, time.Minute)
	cfg := SiteConfig{"brand": "PanoraTravel"}
	if _, err := svc.SaveAll(context.Background(), SavePayload{SiteConfig: &cfg}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mr.Exists(snapshotCacheKey) {
		t.Fatalf("expected snapshot cache invalidated after save")
	}
}
