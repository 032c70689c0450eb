package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/web/templates/shared"
)

// ContactRateLimiter throttles contact submissions per client IP inside this
// process. It is used when no Redis guard is configured. Submissions are
// spaced evenly, one per window/limit, so no window ever sees more than limit
// of them.
func (h *ContactHandler) ContactRateLimiter(limit int64, window time.Duration) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     1,
		ExpiresIn: window,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return h.rateLimited(c)
		},
	})
}

// rateLimited answers HTMX with only the toast, leaving the form as typed
func (h *ContactHandler) rateLimited(c echo.Context) error {
	h.metrics.IncrementContact(submitResult(contact.ErrRateLimited))
	message := contact.UserMessage(contact.ErrRateLimited)

	if c.Request().Header.Get("HX-Request") != "true" {
		return echo.NewHTTPError(http.StatusTooManyRequests, message)
	}

	var buf bytes.Buffer
	toast := shared.Toast(shared.ToastProps{Title: "Message not sent", Description: message, Error: true, OOB: true})
	if err := toast.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	c.Response().Header().Set("HX-Reswap", "none")
	return c.HTMLBlob(http.StatusTooManyRequests, buf.Bytes())
}
