// Package nav holds the header state: the mobile menu and the scrolled style,
// plus how a selected link is resolved.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ScrollThreshold is the vertical offset in pixels past which the header is
// drawn in its scrolled style
const ScrollThreshold = 50

// ErrAnchorNotFound is returned when a same-page link targets a missing section
var ErrAnchorNotFound = errors.New("nav: anchor not found")

// ActionKind says what the client does after a link is selected
type ActionKind string

const (
	ActionNone   ActionKind = "none"
	ActionScroll ActionKind = "scroll"
	ActionOpen   ActionKind = "open"
)

// Action is the resolved effect of selecting a link
type Action struct {
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target,omitempty"`
}

// Resolve maps href onto an Action. "#id" scrolls to a section listed in
// anchors; absolute URLs, mailto:, tel: and rooted paths open in a new tab.
// A bare "#" and unknown anchors do nothing; the latter also returns
// ErrAnchorNotFound.
func Resolve(href string, anchors map[string]bool) (Action, error) {
	href = strings.TrimSpace(href)

	switch {
	case href == "" || href == "#":
		return Action{Kind: ActionNone}, nil
	case strings.HasPrefix(href, "#"):
		id := strings.TrimPrefix(href, "#")
		if !anchors[id] {
			return Action{Kind: ActionNone}, fmt.Errorf("%w: %s", ErrAnchorNotFound, href)
		}
		return Action{Kind: ActionScroll, Target: id}, nil
	case isExternal(href):
		return Action{Kind: ActionOpen, Target: href}, nil
	default:
		return Action{Kind: ActionNone}, nil
	}
}

func isExternal(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}

// State is one viewer's header state
type State struct {
	MenuOpen bool `json:"menu_open"`
	Scrolled bool `json:"scrolled"`
}

// Toggle flips the mobile menu
func (s *State) Toggle() {
	s.MenuOpen = !s.MenuOpen
}

// Close closes the mobile menu
func (s *State) Close() {
	s.MenuOpen = false
}

// OutsideClick handles a click outside the menu panel
func (s *State) OutsideClick() {
	s.Close()
}

// OnScroll updates Scrolled from the page offset and reports whether it changed
func (s *State) OnScroll(offset float64) bool {
	scrolled := offset > ScrollThreshold
	if scrolled == s.Scrolled {
		return false
	}
	s.Scrolled = scrolled
	return true
}

// Select closes the menu and resolves href
func (s *State) Select(href string, anchors map[string]bool) (Action, error) {
	s.Close()
	return Resolve(href, anchors)
}
