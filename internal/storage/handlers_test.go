package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestUploadHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "op-1", "/media/fleet/van.jpg", "fleet", "image").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "op-1", "file_name": "van.jpg", "folder": "fleet", "kind": "image"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: %v status=%d", err, resp.StatusCode)
	}
	out, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(out), "/media/fleet/van.jpg") {
		t.Fatalf("expected stored path in response: %s", out)
	}
}

func TestUploadHandlerDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "op-1", "/media/general/upload", "general", "image").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "op-1", "kind": "image"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: %v status=%d", err, resp.StatusCode)
	}
}

func TestUploadHandlerError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO media_objects`).
		WithArgs(pgxmock.AnyArg(), "op-1", "/media/fleet/van.jpg", "fleet", "image").
		WillReturnError(errSave)

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock), func(c *fiber.Ctx) error { return c.Next() })

	body, _ := json.Marshal(map[string]string{"user_id": "op-1", "file_name": "van.jpg", "folder": "fleet", "kind": "image"})
	req := httptest.NewRequest(http.MethodPost, "/media/upload", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestListHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, url, folder, kind, created_at`).
		WithArgs("general").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "url", "folder", "kind", "created_at"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/media"), NewService(mock), func(c *fiber.Ctx) error { return c.Next() })

	req := httptest.NewRequest(http.MethodGet, "/media/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %v status=%d", err, resp.StatusCode)
	}
}
