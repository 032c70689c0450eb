package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchors = map[string]bool{"home": true, "about": true, "projects": true, "contact": true}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected Action
		err      error
	}{
		{name: "present anchor", href: "#projects", expected: Action{Kind: ActionScroll, Target: "projects"}},
		{name: "missing anchor", href: "#blog", expected: Action{Kind: ActionNone}, err: ErrAnchorNotFound},
		{name: "bare hash", href: "#", expected: Action{Kind: ActionNone}},
		{name: "https", href: "https://github.com/someone", expected: Action{Kind: ActionOpen, Target: "https://github.com/someone"}},
		{name: "mailto", href: "mailto:me@example.com", expected: Action{Kind: ActionOpen, Target: "mailto:me@example.com"}},
		{name: "tel", href: "tel:+10000000", expected: Action{Kind: ActionOpen, Target: "tel:+10000000"}},
		{name: "resume path", href: "/resume.pdf", expected: Action{Kind: ActionOpen, Target: "/resume.pdf"}},
		{name: "relative", href: "about", expected: Action{Kind: ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := Resolve(tt.href, anchors)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, action)
		})
	}
}

func TestScrollFlipsHeaderStyle(t *testing.T) {
	var s State

	assert.False(t, s.OnScroll(0))
	assert.False(t, s.Scrolled)

	assert.True(t, s.OnScroll(200))
	assert.True(t, s.Scrolled)

	assert.False(t, s.OnScroll(300), "no change while staying past the threshold")

	assert.True(t, s.OnScroll(0))
	assert.False(t, s.Scrolled)
}

func TestScrollThresholdIsExclusive(t *testing.T) {
	var s State
	s.OnScroll(ScrollThreshold)
	assert.False(t, s.Scrolled)
	s.OnScroll(ScrollThreshold + 1)
	assert.True(t, s.Scrolled)
}

func TestToggleOpenThenClosedRestoresState(t *testing.T) {
	s := State{Scrolled: true}
	before := s

	s.Toggle()
	assert.True(t, s.MenuOpen)
	s.Toggle()
	assert.Equal(t, before, s)
}

func TestMenuClosesOnOutsideClickAndSelect(t *testing.T) {
	s := State{MenuOpen: true}
	s.OutsideClick()
	assert.False(t, s.MenuOpen)

	s.Toggle()
	action, err := s.Select("#about", anchors)
	require.NoError(t, err)
	assert.False(t, s.MenuOpen)
	assert.Equal(t, ActionScroll, action.Kind)

	s.Toggle()
	_, err = s.Select("#missing", anchors)
	assert.ErrorIs(t, err, ErrAnchorNotFound)
	assert.False(t, s.MenuOpen, "menu closes even when the anchor is missing")
}
