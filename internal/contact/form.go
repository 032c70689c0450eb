package contact

import (
	"context"
	"fmt"
	"sync"
)

// Status is the submit state of a Form
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusFailed     Status = "failed"
)

// Notification is a fire-and-forget toast
type Notification struct {
	Title       string
	Description string
	Error       bool
}

// Notifier shows a toast; it has no return value by contract
type Notifier func(Notification)

// Success toast shown after a message was accepted
var sentNotification = Notification{
	Title:       "Message sent successfully!",
	Description: "Thank you for reaching out. I'll get back to you soon.",
}

// Form is the contact form widget state. It is safe for concurrent use; a
// second Submit while one is in flight fails with ErrBusy.
type Form struct {
	mu      sync.Mutex
	sender  Sender
	notify  Notifier
	payload Payload
	status  Status
	lastErr error
}

// Snapshot is a copy of the form state for rendering
type Snapshot struct {
	Payload Payload
	Status  Status
	Err     error
}

// Submitting reports whether the submit control must be disabled
func (s Snapshot) Submitting() bool {
	return s.Status == StatusSubmitting
}

// FieldErrors returns per-field validation messages, if the last submit had any
func (s Snapshot) FieldErrors() map[string]string {
	if verr, ok := s.Err.(*ValidationError); ok {
		return verr.Fields
	}
	return nil
}

// NewForm creates an idle, empty form. notify may be nil.
func NewForm(sender Sender, notify Notifier) *Form {
	if notify == nil {
		notify = func(Notification) {}
	}
	return &Form{sender: sender, notify: notify, status: StatusIdle}
}

// Set updates one field by its form name
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "name":
		f.payload.Name = value
	case "email":
		f.payload.Email = value
	case "subject":
		f.payload.Subject = value
	case "message":
		f.payload.Message = value
	default:
		return fmt.Errorf("contact: unknown field %q", field)
	}
	return nil
}

// Fill replaces every field at once
func (f *Form) Fill(p Payload) {
	f.mu.Lock()
	f.payload = p
	f.mu.Unlock()
}

// State returns a snapshot of the form
func (f *Form) State() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{Payload: f.payload, Status: f.status, Err: f.lastErr}
}

// Submit validates the fields and hands them to the sender.
//
// Invalid fields leave the state untouched. While the sender runs the form is
// submitting. On success the fields are cleared and the form returns to idle;
// on failure the fields are kept and the form is failed until the next submit.
func (f *Form) Submit(ctx context.Context) (Ack, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return Ack{}, ErrBusy
	}
	if err := f.payload.Validate(); err != nil {
		f.lastErr = err
		f.mu.Unlock()
		return Ack{}, err
	}
	payload := f.payload.Normalize()
	f.status = StatusSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	ack, err := f.sender.Send(ctx, payload)

	f.mu.Lock()
	if err != nil {
		f.status = StatusFailed
		f.lastErr = err
		f.mu.Unlock()
		f.notify(Notification{Title: "Message not sent", Description: UserMessage(err), Error: true})
		return Ack{}, err
	}
	f.payload = Payload{}
	f.status = StatusIdle
	f.mu.Unlock()

	f.notify(sentNotification)
	return ack, nil
}
