package inquiry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthroughAuth(c *fiber.Ctx) error { return c.Next() }

func newTestApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	app := fiber.New()
	RegisterRoutes(app.Group("/inquiries"), NewService(mock, nil), passthroughAuth)
	return app, mock
}

func TestSubmitHandler(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`INSERT INTO inquiries`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"status", "created_at"}).AddRow(StatusNew, time.Now()))

	body := `{"name":"Anna","email":"anna@example.com","passenger_count":2}`
	req := httptest.NewRequest(http.MethodPost, "/inquiries/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %v status=%d", err, resp.StatusCode)
	}
}

func TestSubmitHandlerValidation(t *testing.T) {
	app, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/inquiries/", strings.NewReader(`{"name":"Anna"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListHandlerEmpty(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`SELECT id, name, email, phone, passenger_count`).
		WillReturnRows(inquiryRows())

	req := httptest.NewRequest(http.MethodGet, "/inquiries/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %v status=%d", err, resp.StatusCode)
	}
}

func TestStatusHandlerConflict(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`SELECT id, name, email, phone, passenger_count`).
		WithArgs("q1").
		WillReturnRows(inquiryRows().
			AddRow("q1", "Anna", "anna@example.com", "", 2, "",
				"", []string{}, []string{}, "", StatusClosed, time.Now()))

	req := httptest.NewRequest(http.MethodPatch, "/inquiries/q1/status", strings.NewReader(`{"status":"planning"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetHandlerNotFound(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`SELECT id, name, email, phone, passenger_count`).
		WithArgs("missing").
		WillReturnError(errInquiry)

	req := httptest.NewRequest(http.MethodGet, "/inquiries/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
