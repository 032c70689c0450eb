package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"portfolio_app_echo/internal/config"
)

// InitFirebase initializes the Firebase Admin SDK from a service account file
func InitFirebase(ctx context.Context, credPath string) (*firebase.App, error) {
	opt := option.WithCredentialsFile(credPath)
	return firebase.NewApp(ctx, nil, opt)
}

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushService publishes notifications to an FCM topic the owner's devices
// subscribe to
type PushService struct {
	client messageSender
	topic  string
}

// NewPushService creates a Firebase app and its messaging client
func NewPushService(ctx context.Context, cfg config.FirebaseConfig) (*PushService, error) {
	app, err := InitFirebase(ctx, cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("init firebase: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &PushService{client: client, topic: cfg.PushTopic}, nil
}

// Publish sends one notification to the topic and returns the message id
func (s *PushService) Publish(ctx context.Context, title, body string, data map[string]string) (string, error) {
	id, err := s.client.Send(ctx, &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish push notification: %w", err)
	}
	return id, nil
}
