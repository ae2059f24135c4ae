package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hazelbrook/doseline/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "doseline-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, "test-secret-key", time.UTC)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	request := httptest.NewRequest(method, target, &body)
	request.Header.Set("Content-Type", "application/json")
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d", request.Method, request.URL.Path, wantStatus, response.StatusCode)
	}
	if response.StatusCode == http.StatusNoContent {
		return nil
	}

	decoded := make(map[string]any)
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

// registerAccount creates an account through the API and returns the bearer
// token the mobile client would hold, plus the new user id.
func registerAccount(t *testing.T, app *fiber.App, name string, email string) (string, uint) {
	t.Helper()

	body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "correct-horse",
	}), http.StatusCreated)

	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatal("register response is missing the token")
	}
	return token, uintField(t, body["user"], "id")
}

// uintField digs a numeric field out of a decoded JSON object.
func uintField(t *testing.T, decoded any, field string) uint {
	t.Helper()

	object, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("expected JSON object, got %T", decoded)
	}
	number, ok := object[field].(float64)
	if !ok {
		t.Fatalf("field %q is missing or not a number", field)
	}
	return uint(number)
}

func authed(request *http.Request, token string) *http.Request {
	request.Header.Set("Authorization", "Bearer "+token)
	return request
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
