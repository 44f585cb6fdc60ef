package review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"backend-panoratravel/internal/stream"

	"github.com/pashagolub/pgxmock/v3"
)

var errReview = errors.New("review error")

func reviewRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "author", "country", "rating", "comment", "approved", "created_at"})
}

func TestSubmitStartsUnapproved(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	hub := stream.NewHub(nil)
	client := hub.Register("reviews")
	defer hub.Unregister(client)

	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "Anna", "Germany", 5, "Wonderful trip!", false).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock, hub)
	created, err := svc.Submit(context.Background(), Review{
		Author: "Anna", Country: "Germany", Rating: 5, Comment: "Wonderful trip!", Approved: true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Approved {
		t.Fatalf("submission must not be pre-approved")
	}

	select {
	case msg := <-client.Send:
		if !strings.Contains(string(msg), "review.created") {
			t.Fatalf("unexpected event: %s", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for event")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitRejectsBadRating(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService(mock, nil)
	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Submit(context.Background(), Review{Author: "A", Comment: "x", Rating: rating}); !errors.Is(err, ErrRating) {
			t.Fatalf("rating %d: expected ErrRating, got %v", rating, err)
		}
	}
}

func TestListApprovedOnly(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM reviews WHERE approved`).
		WillReturnRows(reviewRows().
			AddRow("r1", "Anna", "Germany", 5, "Wonderful!", true, time.Now()))

	svc := NewService(mock, nil)
	reviews, err := svc.List(context.Background(), true)
	if err != nil || len(reviews) != 1 {
		t.Fatalf("list: %v (%d)", err, len(reviews))
	}
}

func TestApproveAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE reviews SET approved=true`).
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM reviews`).
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock, nil)
	if err := svc.Approve(context.Background(), "r1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := svc.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
