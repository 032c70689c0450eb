package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/portfolio"
)

// PageHandler renders the single portfolio page
type PageHandler struct {
	site         *content.Site
	roleInterval time.Duration
	now          func() time.Time
}

func NewPageHandler(site *content.Site, roleInterval time.Duration) *PageHandler {
	return &PageHandler{site: site, roleInterval: roleInterval, now: time.Now}
}

// Index renders the whole page. ?category preselects a project tab and
// ?menu=open renders the mobile menu expanded, so both work without scripts.
func (h *PageHandler) Index(c echo.Context) error {
	selected, err := portfolio.ParseCategory(c.QueryParam("category"))
	if err != nil {
		log.Printf("Ignoring category filter: %v", err)
		selected = models.CategoryAll
	}

	data := h.pageData(selected)
	data.MenuOpen = c.QueryParam("menu") == "open"

	return c.Render(http.StatusOK, "index.html", data)
}

func (h *PageHandler) pageData(selected models.Category) PageData {
	return PageData{
		Title:          h.site.Profile.FullName() + " | " + h.site.Profile.Tagline,
		Site:           h.site,
		Role:           h.site.Roles[0],
		Tabs:           portfolio.Tabs(h.site.Projects, selected),
		Selected:       selected,
		Projects:       portfolio.Filter(h.site.Projects, selected),
		Spotlight:      portfolio.Featured(h.site.Projects),
		Year:           h.now().Year(),
		LiveURL:        "/live",
		RoleIntervalMs: h.roleInterval.Milliseconds(),
	}
}
