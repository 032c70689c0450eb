// Package content holds the hard-coded tables the portfolio page is rendered from.
package content

import (
	"errors"
	"fmt"

	"portfolio_app_echo/internal/models"
)

// ErrInvalid is returned when a content table breaks one of its invariants
var ErrInvalid = errors.New("invalid content")

// Profile is the owner of the portfolio
type Profile struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Greeting   string `yaml:"greeting"`
	Bio        string `yaml:"bio"`
	Tagline    string `yaml:"tagline"`
	Location   string `yaml:"location"`
	City       string `yaml:"city"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	PhoneHref  string `yaml:"phone_href"`
	AvatarURL  string `yaml:"avatar_url"`
	ResumePath string `yaml:"resume_path"`
	GitHubURL  string `yaml:"github_url"`
	BookingURL string `yaml:"booking_url"`
}

// FullName joins first and last name
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Link is an anchor rendered in the navigation, footer or contact section
type Link struct {
	Label    string `yaml:"label"`
	Href     string `yaml:"href"`
	Icon     string `yaml:"icon,omitempty"`
	Value    string `yaml:"value,omitempty"`
	External bool   `yaml:"external,omitempty"`
}

// SkillGroup is one card of the tech stack grid
type SkillGroup struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// Achievement is one card of the key achievements grid
type Achievement struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Metric      string `yaml:"metric"`
}

// FooterSection is a titled column of footer links
type FooterSection struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

// Site bundles every table the page needs
type Site struct {
	Profile        Profile          `yaml:"profile"`
	Roles          []string         `yaml:"roles"`
	NavItems       []Link           `yaml:"nav_items"`
	Journey        []string         `yaml:"journey"`
	Drives         []string         `yaml:"drives"`
	Badges         []string         `yaml:"badges"`
	Achievements   []Achievement    `yaml:"achievements"`
	SkillGroups    []SkillGroup     `yaml:"skill_groups"`
	Projects       []models.Project `yaml:"projects"`
	ContactInfo    []Link           `yaml:"contact_info"`
	SocialLinks    []Link           `yaml:"social_links"`
	QuickActions   []Link           `yaml:"quick_actions"`
	FooterSections []FooterSection  `yaml:"footer_sections"`
}

// Anchors returns the in-page section ids the navigation may scroll to
func (s *Site) Anchors() map[string]bool {
	return map[string]bool{
		"home":     true,
		"about":    true,
		"projects": true,
		"contact":  true,
	}
}

// ProjectByID looks up a project by its slug
func (s *Site) ProjectByID(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Validate checks the invariants the renderer and filter rely on
func (s *Site) Validate() error {
	if len(s.Roles) == 0 {
		return fmt.Errorf("%w: at least one role is required", ErrInvalid)
	}

	seen := make(map[string]bool, len(s.Projects))
	for _, p := range s.Projects {
		if p.ID == "" {
			return fmt.Errorf("%w: project %q has no id", ErrInvalid, p.Title)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate project id %q", ErrInvalid, p.ID)
		}
		seen[p.ID] = true
		if !p.Category.Valid() {
			return fmt.Errorf("%w: project %q has unknown category %q", ErrInvalid, p.ID, p.Category)
		}
	}

	for _, item := range s.NavItems {
		if item.Href == "" {
			return fmt.Errorf("%w: nav item %q has no href", ErrInvalid, item.Label)
		}
	}
	return nil
}
