package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio_app_echo/internal/config"
	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/models"
)

// Channel names
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelPush     = "push"
)

// Channel delivers a contact message to the site owner
type Channel interface {
	Name() string
	Notify(ctx context.Context, msg models.ContactMessage) error
}

// EmailChannel mails the owner with the visitor as Reply-To
type EmailChannel struct {
	Service *EmailService
	To      string
}

func (c *EmailChannel) Name() string { return ChannelEmail }

func (c *EmailChannel) Notify(ctx context.Context, msg models.ContactMessage) error {
	return c.Service.SendEmail(ctx, []string{c.To}, msg.Email, msg.Title(), msg.Body())
}

// WhatsAppChannel messages the owner through WAHA
type WhatsAppChannel struct {
	Service *WahaService
	ChatID  string
}

func (c *WhatsAppChannel) Name() string { return ChannelWhatsApp }

func (c *WhatsAppChannel) Notify(ctx context.Context, msg models.ContactMessage) error {
	text := fmt.Sprintf("*%s*\nFrom: %s <%s>\n\n%s", msg.Title(), msg.Name, msg.Email, msg.Message)
	return c.Service.SendMessage(ctx, c.ChatID, text)
}

// PushChannel publishes a short notification to the owner's devices
type PushChannel struct {
	Service *PushService
}

func (c *PushChannel) Name() string { return ChannelPush }

func (c *PushChannel) Notify(ctx context.Context, msg models.ContactMessage) error {
	_, err := c.Service.Publish(ctx, msg.Title(), fmt.Sprintf("%s <%s>", msg.Name, msg.Email), map[string]string{
		"message_id": msg.ID,
		"reply_to":   msg.Email,
	})
	return err
}

// DeliveryObserver is told the outcome of every channel attempt
type DeliveryObserver interface {
	IncrementNotification(channel string, err error)
}

// Notifier fans a message out to every configured channel
type Notifier struct {
	channels []Channel
	observer DeliveryObserver
}

func NewNotifier(observer DeliveryObserver, channels ...Channel) *Notifier {
	return &Notifier{channels: channels, observer: observer}
}

// Channels returns the configured channel names in delivery order
func (n *Notifier) Channels() []string {
	names := make([]string, 0, len(n.channels))
	for _, ch := range n.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Enabled reports whether any channel is configured
func (n *Notifier) Enabled() bool {
	return len(n.channels) > 0
}

// Deliver sends msg through the named channels, or all of them when only is
// empty, and returns the errors by channel name. Channels run one after
// another; a failure does not stop the rest.
func (n *Notifier) Deliver(ctx context.Context, msg models.ContactMessage, only ...string) map[string]error {
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	failures := make(map[string]error)
	for _, ch := range n.channels {
		if len(wanted) > 0 && !wanted[ch.Name()] {
			continue
		}
		err := ch.Notify(ctx, msg)
		if n.observer != nil {
			n.observer.IncrementNotification(ch.Name(), err)
		}
		if err != nil {
			log.Printf("Failed to notify via %s for message %s: %v", ch.Name(), msg.ID, err)
			failures[ch.Name()] = err
		}
	}
	return failures
}

// DeliveryError reports that every attempted channel failed
type DeliveryError struct {
	Failures map[string]error
}

func (e *DeliveryError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for name := range e.Failures {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Failures[name].Error())
	}
	return "notification failed on every channel (" + strings.Join(parts, "; ") + ")"
}

// DirectSender delivers contact messages synchronously, inside the request.
// It is used when no outbox database is configured.
type DirectSender struct {
	Notifier *Notifier
}

func (s *DirectSender) Send(ctx context.Context, p contact.Payload) (contact.Ack, error) {
	now := time.Now()
	msg := p.ToMessage(uuid.NewString(), now)
	msg.ClientHash = contact.ClientFrom(ctx)

	failures := s.Notifier.Deliver(ctx, msg)
	if len(failures) > 0 && len(failures) == len(s.Notifier.channels) {
		return contact.Ack{}, &DeliveryError{Failures: failures}
	}
	return contact.Ack{ID: msg.ID, AcceptedAt: now, Via: "direct"}, nil
}

// NewNotifierFromConfig enables every channel whose settings are present.
// ownerEmail is the address contact messages are mailed to.
func NewNotifierFromConfig(ctx context.Context, cfg *config.Config, ownerEmail string, observer DeliveryObserver) *Notifier {
	var channels []Channel

	if cfg.SMTP.Enabled() && ownerEmail != "" {
		channels = append(channels, &EmailChannel{Service: NewEmailService(cfg.SMTP), To: ownerEmail})
	}
	if cfg.Waha.Enabled() {
		channels = append(channels, &WhatsAppChannel{Service: NewWahaService(cfg.Waha), ChatID: cfg.Waha.ChatID})
	}
	if cfg.Firebase.Enabled() {
		push, err := NewPushService(ctx, cfg.Firebase)
		if err != nil {
			log.Printf("Warning: push notifications disabled: %v", err)
		} else {
			channels = append(channels, &PushChannel{Service: push})
		}
	}

	return NewNotifier(observer, channels...)
}
