package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"portfolio_app_echo/internal/config"
	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/content"
	"portfolio_app_echo/internal/handlers"
	"portfolio_app_echo/internal/metrics"
	appMiddleware "portfolio_app_echo/internal/middleware"
	"portfolio_app_echo/internal/services"
	"portfolio_app_echo/internal/tasks"
	"portfolio_app_echo/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatalf("Failed to load site content: %v", err)
	}

	// Server lifetime; cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Initialize Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migration
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, contact messages are delivered inline")
	}

	// Initialize Redis
	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, duplicate and rate guards disabled: %v", err)
		} else {
			defer cache.Close()
		}
	}

	ownerEmail := cfg.Contact.OwnerEmail
	if ownerEmail == "" {
		ownerEmail = site.Profile.Email
	}

	sender := newSender(ctx, cfg, db, cache, ownerEmail, m)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler
	e.Validator = &handlers.CustomValidator{Validator: contact.Validator()}

	// Rate limits key on the client IP, so forwarding headers are only trusted from known proxies
	e.IPExtractor, err = handlers.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	renderer, err := web.NewTemplateRenderer(web.Templates())
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Static file serving
	e.StaticFS("/static", web.Static())

	page := handlers.NewPageHandler(site, cfg.RoleInterval)
	contactHandler := handlers.NewContactHandler(page, sender, m, ownerEmail, cfg.Contact.ClientSalt)
	routes := handlers.Routes{
		Page:     page,
		Projects: handlers.NewProjectHandler(page, site, m, cache),
		Contact:  contactHandler,
		Live:     handlers.NewLiveHandler(ctx, site, cfg.RoleInterval, m, cfg.LiveOrigin()),
		Health:   handlers.NewHealthHandler(db, cache),
		Resume:   handlers.NewResumeHandler(cfg.ResumePath, web.Static()),
		Metrics:  echo.WrapHandler(m.Handler()),
	}
	// Redis guards rate limits across instances; without it, limit per process
	if cache == nil && cfg.Contact.RateLimit > 0 {
		routes.ContactLimit = contactHandler.ContactRateLimiter(cfg.Contact.RateLimit, cfg.Contact.RateWindow)
	}
	routes.Register(e)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
		os.Exit(1)
	}
}

// newSender picks how accepted messages reach the owner: through the outbox
// when a database is configured, inline when only channels are, and a
// simulated delay otherwise. Redis adds the duplicate and rate guards.
func newSender(ctx context.Context, cfg *config.Config, db *gorm.DB, cache *services.RedisCache, ownerEmail string, m *metrics.Metrics) contact.Sender {
	var sender contact.Sender
	switch {
	case db != nil:
		log.Println("Contact messages go through the task outbox")
		sender = &tasks.OutboxSender{DB: db, MaxAttempt: cfg.Contact.MaxAttempt}
	default:
		notifier := services.NewNotifierFromConfig(ctx, cfg, ownerEmail, m)
		if notifier.Enabled() {
			log.Printf("Contact messages are delivered inline via %v", notifier.Channels())
			sender = &services.DirectSender{Notifier: notifier}
		} else {
			log.Println("Warning: no notification channel configured, contact messages are simulated")
			sender = contact.SimulatedSender{Delay: cfg.Contact.SimulatedDelay}
		}
	}

	if cache == nil {
		return sender
	}
	return &contact.GuardedSender{
		Next:            sender,
		Guard:           cache,
		DuplicateWindow: cfg.Contact.DuplicateWindow,
		RateLimit:       cfg.Contact.RateLimit,
		RateWindow:      cfg.Contact.RateWindow,
	}
}
