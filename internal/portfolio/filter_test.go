package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: "a", Category: models.CategoryWebApp, Featured: true},
		{ID: "b", Category: models.CategoryGame},
		{ID: "c", Category: models.CategoryWebApp},
		{ID: "d", Category: models.CategoryGraphics, Featured: true},
	}
}

func ids(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		expected []string
	}{
		{name: "all returns everything", category: models.CategoryAll, expected: []string{"a", "b", "c", "d"}},
		{name: "keeps source order", category: models.CategoryWebApp, expected: []string{"a", "c"}},
		{name: "single match", category: models.CategoryGame, expected: []string{"b"}},
		{name: "no match", category: models.CategoryDesktopApp, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleProjects(), tt.category)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilterOnlyReturnsSelectedCategory(t *testing.T) {
	projects := content.Default().Projects
	for _, c := range models.Categories {
		prev := -1
		for _, p := range Filter(projects, c) {
			assert.Equal(t, c, p.Category)

			idx := -1
			for i, src := range projects {
				if src.ID == p.ID {
					idx = i
				}
			}
			assert.Greater(t, idx, prev, "relative order must be preserved")
			prev = idx
		}
	}
}

func TestFilterGameFromDefaults(t *testing.T) {
	got := Filter(content.Default().Projects, models.CategoryGame)
	require.Len(t, got, 1)
	assert.Equal(t, "asteroids-point-zero", got[0].ID)
}

func TestFeatured(t *testing.T) {
	assert.Equal(t, []string{"a", "d"}, ids(Featured(sampleProjects())))
	assert.NotNil(t, Featured(nil))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Category
		wantErr  bool
	}{
		{input: "", expected: models.CategoryAll},
		{input: "All", expected: models.CategoryAll},
		{input: "game", expected: models.CategoryGame},
		{input: " Desktop App ", expected: models.CategoryDesktopApp},
		{input: "Mobile", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTabs(t *testing.T) {
	tabs := Tabs(sampleProjects(), models.CategoryWebApp)
	require.Len(t, tabs, len(models.Categories)+1)

	assert.Equal(t, Tab{Category: models.CategoryAll, Count: 4}, tabs[0])
	assert.Equal(t, Tab{Category: models.CategoryWebApp, Count: 2, Active: true}, tabs[1])
	assert.Equal(t, 0, tabs[4].Count)
}
