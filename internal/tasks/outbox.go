package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio_app_echo/internal/contact"
)

// OutboxSender accepts a contact message by enqueueing a notification task
// for the worker. The request returns as soon as the row is committed.
type OutboxSender struct {
	DB         *gorm.DB
	MaxAttempt int
}

func (s *OutboxSender) Send(ctx context.Context, p contact.Payload) (contact.Ack, error) {
	now := time.Now()
	msg := p.ToMessage(uuid.NewString(), now)
	msg.ClientHash = contact.ClientFrom(ctx)

	task, err := SendContactNotificationTask.CreateTask(SendContactNotificationArgs{Message: msg}, s.MaxAttempt)
	if err != nil {
		return contact.Ack{}, err
	}
	if err := s.DB.WithContext(ctx).Create(task).Error; err != nil {
		return contact.Ack{}, fmt.Errorf("failed to enqueue contact notification: %w", err)
	}

	return contact.Ack{ID: msg.ID, AcceptedAt: now, Via: "outbox"}, nil
}
