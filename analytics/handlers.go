package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler handles analytics HTTP requests.
type Handler struct {
	store          *Store
	collectLimiter *rateLimiter
}

// NewHandler creates a new analytics handler.
// The collect endpoint is rate-limited to 60 requests per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:          store,
		collectLimiter: newRateLimiter(60, time.Minute),
	}
}

// CollectRequest is the expected request body for the collect endpoint.
type CollectRequest struct {
	Path       string `json:"path"`
	Referrer   string `json:"referrer"`
	ScreenSize string `json:"screen_size"`
	UserAgent  string `json:"user_agent"`
}

// Input validation limits for the collect endpoint.
const (
	maxBodyLen       = 8 << 10
	maxPathLen       = 2048
	maxReferrerLen   = 2048
	maxScreenSizeLen = 32
	maxUserAgentLen  = 512
)

func validateCollectRequest(req *CollectRequest) error {
	if len(req.Path) > maxPathLen {
		return fmt.Errorf("path exceeds maximum length of %d", maxPathLen)
	}
	if len(req.Referrer) > maxReferrerLen {
		return fmt.Errorf("referrer exceeds maximum length of %d", maxReferrerLen)
	}
	if len(req.ScreenSize) > maxScreenSizeLen {
		return fmt.Errorf("screen_size exceeds maximum length of %d", maxScreenSizeLen)
	}
	if len(req.UserAgent) > maxUserAgentLen {
		return fmt.Errorf("user_agent exceeds maximum length of %d", maxUserAgentLen)
	}
	return nil
}

// Collect handles incoming analytics beacons from clients.
func (h *Handler) Collect(c echo.Context) error {
	// Rate limit by IP to prevent analytics flooding.
	if !h.collectLimiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	// Honor Do Not Track.
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	// navigator.sendBeacon delivers string payloads as text/plain, so decode
	// the body directly instead of going through content-type negotiation.
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyLen))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	var req CollectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := validateCollectRequest(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request().UserAgent()
	}
	if IsBot(userAgent) {
		return c.NoContent(http.StatusNoContent)
	}

	ip := c.RealIP()
	browser, os, device := ParseUserAgent(userAgent)

	visit := &Visit{
		VisitorID:  GenerateVisitorID(ip, userAgent),
		IPHash:     HashIP(ip),
		Browser:    browser,
		OS:         os,
		Device:     device,
		Path:       req.Path,
		Referrer:   CleanReferrer(req.Referrer),
		ScreenSize: req.ScreenSize,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.store.SaveVisit(visit); err != nil {
		c.Logger().Errorf("Failed to save visit: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats returns aggregated statistics as JSON. The period query parameter
// selects the window: 7d (default), 30d, or 90d.
func (h *Handler) Stats(c echo.Context) error {
	days := 7
	switch c.QueryParam("period") {
	case "", "7d":
		days = 7
	case "30d":
		days = 30
	case "90d":
		days = 90
	default:
		return c.String(http.StatusBadRequest, "Invalid period")
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	stats, err := h.store.GetStats(from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers analytics routes with the Echo router. The stats
// endpoint is wrapped in authMiddleware; the collect beacon stays public.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/analytics/visit", h.Collect)
	e.GET("/api/analytics/stats", h.Stats, authMiddleware)
}
