// Package contact implements the contact form: its payload, its submit state
// machine and the Sender boundary messages leave the site through.
package contact

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"portfolio_app_echo/internal/models"
)

// Payload is the four-field contact form
type Payload struct {
	Name    string `form:"name" json:"name" validate:"required,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Subject string `form:"subject" json:"subject" validate:"required,max=200"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

var validate = validator.New()

// Validator exposes the shared validator instance so echo can reuse it
func Validator() *validator.Validate {
	return validate
}

// Normalize trims surrounding whitespace from every field
func (p Payload) Normalize() Payload {
	return Payload{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.TrimSpace(p.Email),
		Subject: strings.TrimSpace(p.Subject),
		Message: strings.TrimSpace(p.Message),
	}
}

// IsZero reports whether every field is empty
func (p Payload) IsZero() bool {
	return p == Payload{}
}

// Validate checks the normalized payload and returns a *ValidationError
// listing every offending field.
func (p Payload) Validate() error {
	err := validate.Struct(p.Normalize())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate contact payload: %w", err)
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return verr
}

// ToMessage converts the payload into the message handed to senders
func (p Payload) ToMessage(id string, at time.Time) models.ContactMessage {
	n := p.Normalize()
	return models.ContactMessage{
		ID:          id,
		Name:        n.Name,
		Email:       n.Email,
		Subject:     n.Subject,
		Message:     n.Message,
		SubmittedAt: at,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

// ValidationError lists the form fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "contact: invalid form: " + strings.Join(parts, ", ")
}

// Has reports whether field failed validation
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}
