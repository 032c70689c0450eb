// Package portfolio selects which projects the showcase grid displays.
package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"portfolio_app_echo/internal/models"
)

// ErrUnknownCategory is returned by ParseCategory for values outside the declared set
var ErrUnknownCategory = errors.New("portfolio: unknown category")

// Filter returns the projects whose category equals c, in source order.
// CategoryAll returns the input unchanged. No match yields an empty, non-nil slice.
func Filter(projects []models.Project, c models.Category) []models.Project {
	if c == models.CategoryAll {
		return projects
	}

	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == c {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Featured returns the projects flagged as featured, in source order
func Featured(projects []models.Project) []models.Project {
	featured := make([]models.Project, 0)
	for _, p := range projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// ParseCategory maps a query value onto a Category. The empty string means All;
// matching ignores case and surrounding whitespace.
func ParseCategory(s string) (models.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.CategoryAll, nil
	}

	for _, c := range models.FilterCategories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// CountByCategory counts projects per category, including All
func CountByCategory(projects []models.Project) map[models.Category]int {
	counts := make(map[models.Category]int, len(models.Categories)+1)
	counts[models.CategoryAll] = len(projects)
	for _, p := range projects {
		counts[p.Category]++
	}
	return counts
}

// Tab is one filter button
type Tab struct {
	Category models.Category
	Count    int
	Active   bool
}

// Tabs lists the filter buttons in declaration order with their counts
func Tabs(projects []models.Project, selected models.Category) []Tab {
	counts := CountByCategory(projects)
	cats := models.FilterCategories()
	tabs := make([]Tab, 0, len(cats))
	for _, c := range cats {
		tabs = append(tabs, Tab{Category: c, Count: counts[c], Active: c == selected})
	}
	return tabs
}
