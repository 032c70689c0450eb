// Package live runs the per-viewer WebSocket session that drives the page's
// timed and scroll-derived state. Everything a session starts ends with it.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"portfolio_app_echo/internal/nav"
	"portfolio_app_echo/internal/rotator"
)

// Conn is the part of *websocket.Conn a session uses
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	Close() error
}

// ClientMessage is sent by the browser
type ClientMessage struct {
	Type   string  `json:"type"`
	Y      float64 `json:"y,omitempty"`
	Action string  `json:"action,omitempty"`
	Href   string  `json:"href,omitempty"`
}

// RoleMessage announces the role now on screen
type RoleMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Role  string `json:"role"`
}

// NavMessage carries the header state after it changed
type NavMessage struct {
	Type string `json:"type"`
	nav.State
}

// ActionMessage tells the browser what to do with a selected link
type ActionMessage struct {
	Type string `json:"type"`
	nav.Action
}

// ErrorMessage reports a message the session could not handle
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Session is one connected viewer
type Session struct {
	conn     Conn
	cycler   *rotator.Cycler
	interval time.Duration
	anchors  map[string]bool

	writeMu sync.Mutex
	state   nav.State
}

// NewSession creates a session with its own role cycler
func NewSession(conn Conn, roles []string, interval time.Duration, anchors map[string]bool) (*Session, error) {
	cycler, err := rotator.New(roles)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn, cycler: cycler, interval: interval, anchors: anchors}, nil
}

// Run serves the session until the client disconnects or ctx is cancelled.
// The rotation ticker is stopped and the connection closed before it returns.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// unblocks ReadMessage once the session is over
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	if err := s.write(RoleMessage{Type: "role", Index: s.cycler.Index(), Role: s.cycler.Current()}); err != nil {
		return err
	}
	if err := s.writeNav(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rotator.Run(ctx, s.cycler, s.interval, func(index int, role string) {
			if err := s.write(RoleMessage{Type: "role", Index: index, Role: role}); err != nil {
				cancel()
			}
		})
	}()

	err := s.readLoop(ctx)
	cancel()
	wg.Wait()
	return err
}

func (s *Session) readLoop(ctx context.Context) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || isDisconnect(err) {
				return nil
			}
			return fmt.Errorf("read live message: %w", err)
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := s.write(ErrorMessage{Type: "error", Message: "malformed message: " + err.Error()}); err != nil {
				return err
			}
			continue
		}

		if err := s.handle(msg); err != nil {
			return err
		}
	}
}

func (s *Session) handle(msg ClientMessage) error {
	switch msg.Type {
	case "scroll":
		if s.state.OnScroll(msg.Y) {
			return s.writeNav()
		}
		return nil

	case "menu":
		before := s.state
		switch msg.Action {
		case "toggle":
			s.state.Toggle()
		case "close":
			s.state.Close()
		case "outside":
			s.state.OutsideClick()
		default:
			return s.write(ErrorMessage{Type: "error", Message: "unknown menu action: " + msg.Action})
		}
		if s.state != before {
			return s.writeNav()
		}
		return nil

	case "navigate":
		before := s.state
		action, err := s.state.Select(msg.Href, s.anchors)
		if err != nil {
			log.Printf("Navigation ignored: %v", err)
		}
		if s.state != before {
			if err := s.writeNav(); err != nil {
				return err
			}
		}
		return s.write(ActionMessage{Type: "action", Action: action})

	default:
		return s.write(ErrorMessage{Type: "error", Message: "unknown message type: " + msg.Type})
	}
}

// State returns the header state. Only safe once Run has returned.
func (s *Session) State() nav.State {
	return s.state
}

func (s *Session) writeNav() error {
	return s.write(NavMessage{Type: "nav", State: s.state})
}

func (s *Session) write(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("write live message: %w", err)
	}
	return nil
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
