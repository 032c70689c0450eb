package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"portfolio_app_echo/internal/config"
	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/services"
	"portfolio_app_echo/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Database
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ownerEmail := cfg.Contact.OwnerEmail
	if ownerEmail == "" {
		site, err := content.Load(cfg.ContentPath)
		if err != nil {
			log.Fatalf("Failed to load site content: %v", err)
		}
		ownerEmail = site.Profile.Email
	}

	notifier := services.NewNotifierFromConfig(ctx, cfg, ownerEmail, nil)
	if !notifier.Enabled() {
		log.Println("Warning: no notification channel configured, contact notifications will fail")
	}

	// Initialize Task Registry
	tasks.DefineTasks(tasks.Dependencies{Notifier: notifier})
	log.Printf("Registered tasks: %v", tasks.GlobalRegistry.Names())

	if err := tasks.PurgeTaskHistoryTask.EnsureScheduled(ctx, db, time.Now()); err != nil {
		log.Printf("Failed to schedule history purge: %v", err)
	}

	log.Printf("Worker started, polling every %s", cfg.WorkerInterval)
	tasks.NewWorker(db, tasks.GlobalRegistry, cfg.WorkerInterval).Run(ctx)
	log.Println("Worker stopped")
}
