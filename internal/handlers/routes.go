package handlers

import (
	"github.com/labstack/echo/v4"
)

// Routes groups the handlers mounted on the server. Nil handlers are skipped.
type Routes struct {
	Page     *PageHandler
	Projects *ProjectHandler
	Contact  *ContactHandler
	Live     *LiveHandler
	Health   *HealthHandler
	Resume   *ResumeHandler
	Metrics  echo.HandlerFunc

	// ContactLimit guards both contact routes when set
	ContactLimit echo.MiddlewareFunc
}

// Register mounts every route on e
func (r Routes) Register(e *echo.Echo) {
	e.GET("/", r.Page.Index)
	e.GET("/projects", r.Projects.Grid)
	var limit []echo.MiddlewareFunc
	if r.ContactLimit != nil {
		limit = append(limit, r.ContactLimit)
	}
	e.POST("/contact", r.Contact.Submit, limit...)

	// JSON API
	api := e.Group("/api")
	api.GET("/projects", r.Projects.List)
	api.GET("/projects/:id", r.Projects.Get)
	api.POST("/contact", r.Contact.SubmitAPI, limit...)

	if r.Live != nil {
		e.GET("/live", r.Live.Serve)
	}
	if r.Resume != nil {
		e.GET("/resume.pdf", r.Resume.Serve)
	}
	if r.Health != nil {
		e.GET("/healthz", r.Health.Health)
	}
	if r.Metrics != nil {
		e.GET("/metrics", r.Metrics)
	}
}
