package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/metrics"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/portfolio"
	"portfolio_app_echo/internal/services"
)

const projectCountsTTL = 10 * time.Minute

type ProjectHandler struct {
	page      *PageHandler
	site      *content.Site
	metrics   *metrics.Metrics
	cache     *services.RedisCache
	countsKey string
}

// NewProjectHandler serves the project grid and API. cache may be nil.
func NewProjectHandler(page *PageHandler, site *content.Site, m *metrics.Metrics, cache *services.RedisCache) *ProjectHandler {
	return &ProjectHandler{
		page:      page,
		site:      site,
		metrics:   m,
		cache:     cache,
		countsKey: "projects:counts:" + catalogVersion(site.Projects),
	}
}

// catalogVersion changes whenever a project is added, removed or recategorized
func catalogVersion(projects []models.Project) string {
	h := sha256.New()
	for _, p := range projects {
		h.Write([]byte(p.ID))
		h.Write([]byte{0})
		h.Write([]byte(p.Category))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// counts returns the number of projects per category, cached in Redis when
// one is configured
func (h *ProjectHandler) counts(ctx context.Context) map[string]int {
	compute := func() (map[string]int, error) {
		counts := make(map[string]int)
		for category, n := range portfolio.CountByCategory(h.site.Projects) {
			counts[string(category)] = n
		}
		return counts, nil
	}

	if h.cache == nil {
		counts, _ := compute()
		return counts
	}

	counts, err := services.GetOrSet(h.cache, ctx, h.countsKey, projectCountsTTL, compute)
	if err != nil {
		log.Printf("Failed to load project counts: %v", err)
		counts, _ = compute()
	}
	return counts
}

// Grid renders the filter tabs and the project cards for ?category
func (h *ProjectHandler) Grid(c echo.Context) error {
	selected, err := portfolio.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown project category")
	}
	h.metrics.IncrementFilter(string(selected))

	return c.Render(http.StatusOK, "project_grid", h.page.pageData(selected))
}

// ProjectsResponse is the JSON listing of projects
type ProjectsResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Counts   map[string]int   `json:"counts"`
	Projects []models.Project `json:"projects"`
}

// List returns the projects in a category as JSON; ?featured=true keeps only
// the featured ones
func (h *ProjectHandler) List(c echo.Context) error {
	selected, err := portfolio.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	projects := portfolio.Filter(h.site.Projects, selected)
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "featured must be a boolean")
		}
		if featured {
			projects = portfolio.Featured(projects)
		}
	}
	h.metrics.IncrementFilter(string(selected))

	return c.JSON(http.StatusOK, ProjectsResponse{
		Category: string(selected),
		Count:    len(projects),
		Counts:   h.counts(c.Request().Context()),
		Projects: projects,
	})
}

// Get returns one project by id
func (h *ProjectHandler) Get(c echo.Context) error {
	project, ok := h.site.ProjectByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}
	return c.JSON(http.StatusOK, project)
}
