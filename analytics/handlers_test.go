package analytics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func setupTestHandler(t *testing.T) (*Handler, *Store, func()) {
	t.Helper()
	path := "data/test_analytics.db"
	if err := os.MkdirAll("data", 0o755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	os.Remove(path) // clean up any existing test db

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := InitSalt(s); err != nil {
		t.Fatalf("failed to init salt: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.Remove(path)
	}

	return NewHandler(s), s, cleanup
}

func collect(t *testing.T, h *Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/visit", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := h.Collect(c); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	return rec
}

func (s *Store) countVisits(t *testing.T) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&n); err != nil {
		t.Fatalf("count visits: %v", err)
	}
	return n
}

// navigator.sendBeacon delivers string payloads as text/plain; the collect
// endpoint must accept them regardless of content type.
func TestCollectAcceptsTextPlainBeacon(t *testing.T) {
	h, s, cleanup := setupTestHandler(t)
	defer cleanup()

	body := `{"path":"/acme/","referrer":"https://duckduckgo.com/","screen_size":"1920x1080","user_agent":"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/121.0"}`
	rec := collect(t, h, "text/plain;charset=UTF-8", body)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := s.countVisits(t); got != 1 {
		t.Fatalf("visits stored = %d, want 1", got)
	}
}

func TestCollectAcceptsJSONContentType(t *testing.T) {
	h, s, cleanup := setupTestHandler(t)
	defer cleanup()

	body := `{"path":"/globex/","user_agent":"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0 Safari/537.36"}`
	rec := collect(t, h, echo.MIMEApplicationJSON, body)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := s.countVisits(t); got != 1 {
		t.Fatalf("visits stored = %d, want 1", got)
	}
}

func TestCollectRejectsMalformedBody(t *testing.T) {
	h, s, cleanup := setupTestHandler(t)
	defer cleanup()

	rec := collect(t, h, "text/plain;charset=UTF-8", "not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := s.countVisits(t); got != 0 {
		t.Fatalf("visits stored = %d, want 0", got)
	}
}

func TestCollectDiscardsBotVisits(t *testing.T) {
	h, s, cleanup := setupTestHandler(t)
	defer cleanup()

	body := `{"path":"/acme/","user_agent":"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"}`
	rec := collect(t, h, echo.MIMEApplicationJSON, body)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := s.countVisits(t); got != 0 {
		t.Fatalf("visits stored = %d, want 0 for bot traffic", got)
	}
}
