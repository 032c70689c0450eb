// Package rotator cycles the hero's role titles on a fixed interval.
package rotator

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is how long each role stays on screen
const DefaultInterval = 3 * time.Second

// ErrNoRoles is returned when a Cycler is created without roles
var ErrNoRoles = errors.New("rotator: no roles to cycle")

// Cycler walks a fixed list of roles, wrapping to the first after the last
type Cycler struct {
	mu    sync.Mutex
	roles []string
	index int
}

// New creates a Cycler positioned on the first role
func New(roles []string) (*Cycler, error) {
	if len(roles) == 0 {
		return nil, ErrNoRoles
	}
	return &Cycler{roles: append([]string(nil), roles...)}, nil
}

// Current returns the role on screen
func (c *Cycler) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roles[c.index]
}

// Index returns the position of the role on screen
func (c *Cycler) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len is the number of roles in a full cycle
func (c *Cycler) Len() int {
	return len(c.roles)
}

// Next advances to the following role and returns its index and value
func (c *Cycler) Next() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = (c.index + 1) % len(c.roles)
	return c.index, c.roles[c.index]
}

// Run advances c every interval and hands the new role to fn until ctx is
// cancelled. The ticker is stopped before Run returns.
func Run(ctx context.Context, c *Cycler, interval time.Duration, fn func(index int, role string)) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(c.Next())
		}
	}
}
