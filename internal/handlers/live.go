package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/live"
	"portfolio_app_echo/internal/metrics"
)

// LiveHandler upgrades /live to a WebSocket and runs one session per viewer
type LiveHandler struct {
	site     *content.Site
	interval time.Duration
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader

	// sessions end when this is cancelled, i.e. on server shutdown
	base context.Context
}

// NewLiveHandler serves live sessions. A non-empty origin restricts browsers
// to that origin; empty accepts any.
func NewLiveHandler(base context.Context, site *content.Site, interval time.Duration, m *metrics.Metrics, origin string) *LiveHandler {
	upgrader := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	if origin == "" {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	} else {
		upgrader.CheckOrigin = allowOrigin(origin)
	}

	return &LiveHandler{
		site:     site,
		interval: interval,
		metrics:  m,
		upgrader: upgrader,
		base:     base,
	}
}

// allowOrigin accepts origin and clients that send no Origin header
func allowOrigin(origin string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		got := r.Header.Get("Origin")
		return got == "" || strings.EqualFold(got, origin)
	}
}

// Serve handles GET /live
func (h *LiveHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered with an HTTP error
		log.Printf("Live upgrade failed: %v", err)
		return nil
	}

	session, err := live.NewSession(conn, h.site.Roles, h.interval, h.site.Anchors())
	if err != nil {
		conn.Close()
		return err
	}

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	if err := session.Run(h.base); err != nil {
		log.Printf("Live session ended: %v", err)
	}
	return nil
}
