package main

import (
	"context"
	"flag"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"portfolio_app_echo/internal/config"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/services"
)

func main() {
	channel := flag.String("channel", "", "Only use this channel (email, whatsapp or push); default all configured")
	to := flag.String("to", "", "Owner email the test is mailed to (default CONTACT_OWNER_EMAIL)")
	msg := flag.String("msg", "Test message from the portfolio notifier", "Message body")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ownerEmail := *to
	if ownerEmail == "" {
		ownerEmail = cfg.Contact.OwnerEmail
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	notifier := services.NewNotifierFromConfig(ctx, cfg, ownerEmail, nil)
	if !notifier.Enabled() {
		log.Fatal("No notification channel is configured")
	}

	message := models.ContactMessage{
		ID:          uuid.NewString(),
		Name:        "Notifier Test",
		Email:       ownerEmail,
		Subject:     "Test notification",
		Message:     *msg,
		SubmittedAt: time.Now(),
	}

	var only []string
	if *channel != "" {
		if !slices.Contains(notifier.Channels(), *channel) {
			log.Fatalf("Channel %q is not configured, have %v", *channel, notifier.Channels())
		}
		only = []string{*channel}
	}

	log.Printf("Sending test message %s via %v", message.ID, notifier.Channels())
	failures := notifier.Deliver(ctx, message, only...)
	if len(failures) > 0 {
		log.Fatalf("Failed to send: %v", &services.DeliveryError{Failures: failures})
	}

	log.Println("Message sent successfully!")
}
