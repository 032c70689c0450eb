package handlers

import (
	"io/fs"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// ResumeHandler serves the resume PDF from disk when the file exists and
// the bundled copy otherwise
type ResumeHandler struct {
	path     string
	fallback fs.FS
}

func NewResumeHandler(path string, fallback fs.FS) *ResumeHandler {
	return &ResumeHandler{path: path, fallback: fallback}
}

func (h *ResumeHandler) Serve(c echo.Context) error {
	if h.path != "" {
		if info, err := os.Stat(h.path); err == nil && !info.IsDir() {
			return c.File(h.path)
		}
	}

	data, err := fs.ReadFile(h.fallback, "resume.pdf")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Resume not available")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="resume.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
