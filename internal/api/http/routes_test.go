package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/uvify/uv-monitor/internal/store"
	"github.com/uvify/uv-monitor/internal/uv"
)

func newTestApp(t *testing.T, readings []uv.Reading) *fiber.App {
	t.Helper()

	app := fiber.New()

	readingStore := store.NewReadingStore()
	readingStore.SetNowFunc(func() time.Time {
		return time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	})
	if len(readings) > 0 {
		readingStore.Merge(uv.StreamHistory, 1, readings)
	}

	svc := uv.NewService(readingStore, nil)
	RegisterRoutes(app, svc, nil, 20)
	return app
}

// TestHistoryWindowValidation verifies that the history endpoint rejects
// unknown windows and custom requests without a date.
func TestHistoryWindowValidation(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/uv/history?window=fortnight", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/uv/history?window=custom", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestHistoryPaginationClamps verifies the out-of-range page policy over a
// 45-reading window with the default page size of 20.
func TestHistoryPaginationClamps(t *testing.T) {
	readings := make([]uv.Reading, 0, 45)
	for i := 0; i < 45; i++ {
		readings = append(readings, uv.Reading{
			Date: "2024-01-01",
			Time: time.Date(2024, 1, 1, 8, i, 0, 0, time.UTC).Format("15:04"),
			UVI:  uv.UVI(float64(i%10) / 2),
		})
	}
	app := newTestApp(t, readings)

	var body struct {
		Page       int          `json:"page"`
		TotalPages int          `json:"totalPages"`
		TotalItems int          `json:"totalItems"`
		Readings   []uv.Reading `json:"readings"`
	}

	fetch := func(page string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/uv/history?window=today&page="+page, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
	}

	fetch("1")
	if body.TotalPages != 3 || body.TotalItems != 45 || len(body.Readings) != 20 {
		t.Fatalf("unexpected first page: pages=%d items=%d len=%d", body.TotalPages, body.TotalItems, len(body.Readings))
	}

	fetch("0")
	if body.Page != 1 {
		t.Fatalf("expected page 0 to clamp to 1, got %d", body.Page)
	}

	fetch("99")
	if body.Page != 3 || len(body.Readings) != 5 {
		t.Fatalf("expected page 99 to clamp to 3 with 5 readings, got page=%d len=%d", body.Page, len(body.Readings))
	}
}

// TestStatsEmptyStore verifies the stats endpoint degrades to a zero-valued
// bundle instead of failing when no data has ever been fetched.
func TestStatsEmptyStore(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/uv/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var stats uv.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if stats.CurrentReading != nil || stats.TodaysPeak != nil || stats.TotalReadings != 0 {
		t.Fatalf("expected zero-valued stats, got %+v", stats)
	}
}

// TestLatestEndpoint verifies the latest endpoint carries the reading, its
// instantaneous classification, and the connectivity flag.
func TestLatestEndpoint(t *testing.T) {
	app := newTestApp(t, []uv.Reading{
		{Date: "2024-01-01", Time: "10:00", UVI: 6.5},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/uv/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Reading     *uv.Reading   `json:"reading"`
		Level       *uv.LevelInfo `json:"level"`
		IsConnected bool          `json:"isConnected"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Reading == nil || body.Level == nil {
		t.Fatalf("expected reading and level in response, got %+v", body)
	}
	if body.Level.Level != "High" {
		t.Fatalf("expected High classification for 6.5, got %q", body.Level.Level)
	}
	if !body.IsConnected {
		t.Fatalf("expected isConnected true after a merge")
	}
}

// TestLoginValidation verifies the proxied login rejects bodies failing
// validation before any backend call is attempted.
func TestLoginValidation(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
