package models

import (
	"fmt"
	"time"
)

// ContactMessage is a contact form submission on its way to the site owner
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
	ClientHash  string    `json:"client_hash,omitempty"`
}

// Title is the one-line summary used for email subjects and push notifications
func (m ContactMessage) Title() string {
	return fmt.Sprintf("Portfolio Contact: %s", m.Subject)
}

// Body renders the plain text notification body
func (m ContactMessage) Body() string {
	return fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form (%s)
`, m.Name, m.Email, m.Subject, m.Message, m.ID)
}
