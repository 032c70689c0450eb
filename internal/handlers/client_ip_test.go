package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/metrics"
)

func TestIPExtractor(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{name: "forwarded header ignored by default", remoteAddr: "203.0.113.5:4000", forwarded: "198.51.100.7", expected: "203.0.113.5"},
		{name: "private peers are not trusted implicitly", remoteAddr: "10.1.2.3:4000", forwarded: "198.51.100.7", expected: "10.1.2.3"},
		{name: "trusted proxy", trusted: []string{"10.0.0.0/8"}, remoteAddr: "10.1.2.3:4000", forwarded: "198.51.100.7", expected: "198.51.100.7"},
		{name: "untrusted peer behind trusted config", trusted: []string{"10.0.0.0/8"}, remoteAddr: "203.0.113.5:4000", forwarded: "198.51.100.7", expected: "203.0.113.5"},
		{
			name:       "spoofed hop before the proxy",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:4000",
			forwarded:  "1.2.3.4, 198.51.100.7",
			expected:   "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			extractor, err := IPExtractor(tt.trusted)
			require.NoError(t, err)
			e.IPExtractor = extractor

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set(echo.HeaderXForwardedFor, tt.forwarded)
			c := e.NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.expected, c.RealIP())
		})
	}
}

func TestIPExtractorRejectsBadRange(t *testing.T) {
	_, err := IPExtractor([]string{"10.0.0.0/33"})
	assert.ErrorContains(t, err, "10.0.0.0/33")
}

func TestContactRateLimiterIgnoresForwardedFor(t *testing.T) {
	srv := newTestServer(t, acceptAll())
	page := NewPageHandler(content.Default(), time.Second)
	h := NewContactHandler(page, acceptAll(), srv.metrics, owner, "salt")
	srv.echo.POST("/limited", h.Submit, h.ContactRateLimiter(1, time.Hour))

	var codes []int
	for _, forwarded := range []string{"10.0.0.0", "10.0.0.1", "10.0.0.2"} {
		req := postForm(contactForm(nil), true)
		req.URL.Path = "/limited"
		req.RemoteAddr = "203.0.113.20:4000"
		req.Header.Set(echo.HeaderXForwardedFor, forwarded)
		codes = append(codes, srv.do(req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestLiveOriginCheck(t *testing.T) {
	site := content.Default()
	e := echo.New()
	ctx, cancel := context.WithCancel(context.Background())
	live := NewLiveHandler(ctx, site, time.Hour, metrics.New(), "https://portfolio.example.com")
	e.GET("/live", live.Serve)

	httpSrv := httptest.NewServer(e)
	defer httpSrv.Close()
	defer cancel()
	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/live"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://portfolio.example.com"}})
	require.NoError(t, err)
	conn.Close()
}
