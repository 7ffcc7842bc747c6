package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/db"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"
const testPassword = "StrongPass1"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tally.db")
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open test database failed: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err != nil {
			t.Fatalf("retrieve sql.DB failed: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("close test database failed: %v", err)
		}
	})

	handler := NewHandler(database, testSecretKey, time.UTC, false)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload failed: %v", err)
		}
		body = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request) (int, []byte) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return response.StatusCode, body
}

func readAllBody(t *testing.T, reader io.Reader) string {
	t.Helper()

	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	return string(body)
}

func decodeJSONBody(t *testing.T, body []byte, target any) {
	t.Helper()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response body %q failed: %v", body, err)
	}
}

// registerTestUser creates an account and returns its bearer token.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": testPassword,
	}, "")
	status, body := performRequest(t, app, request)
	if status != http.StatusCreated {
		t.Fatalf("register expected status 201, got %d: %s", status, body)
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeJSONBody(t, body, &payload)
	if payload.Token == "" {
		t.Fatal("register response missing token")
	}
	return payload.Token
}

func createTestHabit(t *testing.T, app *fiber.App, token string, payload map[string]any) uint {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/habits", payload, token)
	status, body := performRequest(t, app, request)
	if status != http.StatusCreated {
		t.Fatalf("create habit expected status 201, got %d: %s", status, body)
	}

	habit := struct {
		ID uint `json:"id"`
	}{}
	decodeJSONBody(t, body, &habit)
	if habit.ID == 0 {
		t.Fatal("create habit response missing id")
	}
	return habit.ID
}

func weekdayHabitPayload() map[string]any {
	return map[string]any{
		"name":         "Deep work",
		"unit":         "minutes",
		"unit_value":   30,
		"repeat_type":  "daily",
		"daily_repeat": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		"start_date":   "2026-03-07",
	}
}
