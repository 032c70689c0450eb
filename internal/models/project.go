package models

import "fmt"

// Category groups projects for the showcase filter
type Category string

const (
	CategoryAll        Category = "All"
	CategoryWebApp     Category = "Web App"
	CategoryGame       Category = "Game"
	CategoryFrontend   Category = "Frontend"
	CategoryDesktopApp Category = "Desktop App"
	CategoryGraphics   Category = "Graphics"
)

// Categories lists the declared project categories in filter-button order.
// CategoryAll is not a project category, it only selects everything.
var Categories = []Category{
	CategoryWebApp,
	CategoryGame,
	CategoryFrontend,
	CategoryDesktopApp,
	CategoryGraphics,
}

// FilterCategories is the list of buttons rendered above the project grid
func FilterCategories() []Category {
	return append([]Category{CategoryAll}, Categories...)
}

// Valid reports whether c is one of the declared project categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Project represents a portfolio project
type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	Category    Category `json:"category" yaml:"category"`
	GitHubURL   string   `json:"github_url" yaml:"github_url"`
	DemoURL     string   `json:"demo_url,omitempty" yaml:"demo_url,omitempty"`
	Stars       int      `json:"stars" yaml:"stars"`
	Forks       int      `json:"forks" yaml:"forks"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// HasDemo reports whether the project links a live demo
func (p Project) HasDemo() bool {
	return p.DemoURL != ""
}

// TechPreview returns the first n tech tags and how many were left out
func (p Project) TechPreview(n int) ([]string, int) {
	if n < 0 {
		n = 0
	}
	if len(p.Tech) <= n {
		return p.Tech, 0
	}
	return p.Tech[:n], len(p.Tech) - n
}

// VisibleTech is TechPreview without the hidden count, for templates
func (p Project) VisibleTech(n int) []string {
	shown, _ := p.TechPreview(n)
	return shown
}

// HiddenTechLabel renders the "+N" badge text, empty when nothing is hidden
func (p Project) HiddenTechLabel(n int) string {
	_, hidden := p.TechPreview(n)
	if hidden == 0 {
		return ""
	}
	return fmt.Sprintf("+%d", hidden)
}
