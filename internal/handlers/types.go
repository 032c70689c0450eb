package handlers

import (
	"html/template"

	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/portfolio"
)

// FormView is the contact form as the template sees it
type FormView struct {
	Payload    contact.Payload
	Errors     map[string]string
	Submitting bool
	Failed     bool
	ReplyURL   string
}

// PageData represents the common data structure passed to templates
// Using this ensures type safety and consistency
type PageData struct {
	Title string
	Site  *content.Site
	Role  string

	Tabs     []portfolio.Tab
	Selected models.Category
	Projects []models.Project
	// Spotlight lists the featured projects regardless of the selected tab
	Spotlight []models.Project

	Form      FormView
	ToastHTML template.HTML

	MenuOpen bool
	Scrolled bool
	Year     int

	LiveURL        string
	RoleIntervalMs int64
}
