package contact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned when a submit is attempted while one is in flight
	ErrBusy = errors.New("contact: submission already in progress")
	// ErrDuplicate is returned when the same message was accepted recently
	ErrDuplicate = errors.New("contact: duplicate submission")
	// ErrRateLimited is returned when a client sent too many messages
	ErrRateLimited = errors.New("contact: too many submissions")
)

// Ack confirms a message was accepted for delivery
type Ack struct {
	ID         string    `json:"id"`
	AcceptedAt time.Time `json:"accepted_at"`
	Via        string    `json:"via"`
}

// Sender delivers a contact payload to the site owner
type Sender interface {
	Send(ctx context.Context, p Payload) (Ack, error)
}

// SenderFunc adapts a function to the Sender interface
type SenderFunc func(ctx context.Context, p Payload) (Ack, error)

func (f SenderFunc) Send(ctx context.Context, p Payload) (Ack, error) {
	return f(ctx, p)
}

// SimulatedSender waits a fixed delay and accepts every message. It is used
// when no real transport is configured.
type SimulatedSender struct {
	Delay time.Duration
}

func (s SimulatedSender) Send(ctx context.Context, p Payload) (Ack, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Ack{}, ctx.Err()
	case <-timer.C:
	}

	log.Printf("Simulated contact delivery from %s: %q", p.Normalize().Email, p.Normalize().Subject)
	return Ack{ID: uuid.NewString(), AcceptedAt: time.Now(), Via: "simulated"}, nil
}

// Guard is the shared store used to reject duplicates and throttle clients
type Guard interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	IncrementWithin(ctx context.Context, key string, window time.Duration) (int64, error)
	Decrement(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
}

// GuardedSender rejects repeated payloads and chatty clients before handing
// the payload to Next. Only fresh payloads that reach Next count against the
// client's quota. Guard errors are logged and the send proceeds.
type GuardedSender struct {
	Next            Sender
	Guard           Guard
	DuplicateWindow time.Duration
	RateLimit       int64 // per client per RateWindow, 0 disables
	RateWindow      time.Duration
}

func (s *GuardedSender) Send(ctx context.Context, p Payload) (Ack, error) {
	dupKey := "contact:dup:" + Fingerprint(p)
	acquired, err := s.Guard.SetNX(ctx, dupKey, time.Now().Unix(), s.DuplicateWindow)
	if err != nil {
		log.Printf("Contact duplicate guard unavailable: %v", err)
		acquired = true
		dupKey = ""
	}
	if !acquired {
		return Ack{}, ErrDuplicate
	}

	rateKey := ""
	if client := ClientFrom(ctx); client != "" && s.RateLimit > 0 {
		rateKey = "contact:rate:" + client
		n, err := s.Guard.IncrementWithin(ctx, rateKey, s.RateWindow)
		switch {
		case err != nil:
			log.Printf("Contact rate guard unavailable: %v", err)
			rateKey = ""
		case n > s.RateLimit:
			s.release(ctx, dupKey, "")
			return Ack{}, ErrRateLimited
		}
	}

	ack, err := s.Next.Send(ctx, p)
	if err != nil {
		// let the visitor retry the same message after a failed delivery
		s.release(ctx, dupKey, rateKey)
	}
	return ack, err
}

// release frees the duplicate key and returns the quota slot taken by a
// submission that was not delivered
func (s *GuardedSender) release(ctx context.Context, dupKey, rateKey string) {
	ctx = context.WithoutCancel(ctx)
	if dupKey != "" {
		if err := s.Guard.Delete(ctx, dupKey); err != nil {
			log.Printf("Failed to release duplicate guard %s: %v", dupKey, err)
		}
	}
	if rateKey != "" {
		if err := s.Guard.Decrement(ctx, rateKey); err != nil {
			log.Printf("Failed to return rate quota %s: %v", rateKey, err)
		}
	}
}

// Fingerprint identifies a payload for duplicate detection. Case and
// surrounding whitespace are ignored.
func Fingerprint(p Payload) string {
	n := p.Normalize()
	h := sha256.New()
	for _, part := range []string{n.Email, n.Subject, n.Message} {
		h.Write([]byte(strings.ToLower(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:32]
}

// HashClient hashes a client address with a salt so raw IPs are never stored
func HashClient(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

type clientKey struct{}

// WithClient attaches a hashed client identity to ctx
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// ClientFrom returns the hashed client identity attached by WithClient
func ClientFrom(ctx context.Context) string {
	client, _ := ctx.Value(clientKey{}).(string)
	return client
}

// UserMessage turns a submit error into the text shown in the toast
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return "Please fill in every required field."
	case errors.Is(err, ErrBusy):
		return "Your message is still being sent."
	case errors.Is(err, ErrDuplicate):
		return "You already sent this message. I'll get back to you soon."
	case errors.Is(err, ErrRateLimited):
		return "Too many messages from your connection. Please try again later."
	default:
		return "Sorry, there was an error sending your message. Please try again later."
	}
}
