package services

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_app_echo/internal/config"
)

func TestComposeMessage(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := string(composeMessage("site@example.com", []string{"owner@example.com"}, "ada@example.com", "Portfolio Contact: Hi\r\nBcc: evil@example.com", "line one\nline two", at))

	assert.True(t, strings.HasPrefix(msg, "From: site@example.com\r\nTo: owner@example.com\r\n"))
	assert.Contains(t, msg, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, msg, "Subject: Portfolio Contact: Hi  Bcc: evil@example.com\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "\r\n\r\nline one\r\nline two\r\n")
}

func TestComposeMessageWithoutReplyTo(t *testing.T) {
	msg := string(composeMessage("a@example.com", []string{"b@example.com"}, "", "s", "b", time.Now()))
	assert.NotContains(t, msg, "Reply-To")
}

func TestSendEmail(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SMTPConfig
		sendErr error
		wantErr string
	}{
		{
			name:    "missing credentials",
			cfg:     config.SMTPConfig{Host: "smtp.example.com"},
			wantErr: "not fully configured",
		},
		{
			name: "sent",
			cfg:  config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "u", Password: "p"},
		},
		{
			name:    "transport failure",
			cfg:     config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "u", Password: "p"},
			sendErr: errors.New("connection refused"),
			wantErr: "failed to send email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEmailService(tt.cfg)
			var gotAddr, gotFrom string
			svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
				gotAddr, gotFrom = addr, from
				return tt.sendErr
			}

			err := svc.SendEmail(context.Background(), []string{"owner@example.com"}, "", "s", "b")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "smtp.example.com:587", gotAddr)
			assert.Equal(t, "u", gotFrom, "falls back to SMTP user when EMAIL_FROM is empty")
		})
	}
}
