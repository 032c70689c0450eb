// Package config reads the process configuration from the environment.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port        string
	AppURL      string
	Env         string
	DatabaseURL string
	RedisURL    string
	ContentPath string
	ResumePath  string

	// TrustedProxies lists the CIDR ranges allowed to set X-Forwarded-For
	TrustedProxies []string

	SMTP     SMTPConfig
	Contact  ContactConfig
	Waha     WahaConfig
	Firebase FirebaseConfig

	RoleInterval   time.Duration
	WorkerInterval time.Duration
}

// SMTPConfig configures the email channel
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Enabled reports whether every SMTP setting needed to send is present
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.User != "" && c.Password != ""
}

// ContactConfig configures contact form delivery
type ContactConfig struct {
	// OwnerEmail receives the messages; empty means the profile email
	OwnerEmail      string
	ClientSalt      string
	DuplicateWindow time.Duration
	RateLimit       int64
	RateWindow      time.Duration
	SimulatedDelay  time.Duration
	MaxAttempt      int
}

// WahaConfig configures the WhatsApp channel
type WahaConfig struct {
	BaseURL     string
	APIKey      string
	Session     string
	ChatID      string
	CountryCode string
}

// Enabled reports whether a WhatsApp recipient is configured
func (c WahaConfig) Enabled() bool {
	return c.ChatID != ""
}

// FirebaseConfig configures the push channel
type FirebaseConfig struct {
	CredentialsPath string
	PushTopic       string
}

// Enabled reports whether push notifications can be sent
func (c FirebaseConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.PushTopic != ""
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LiveOrigin is the only browser origin allowed to open the live socket. It is
// empty outside production, where any origin may connect.
func (c *Config) LiveOrigin() string {
	if !c.IsProduction() {
		return ""
	}
	u, err := url.Parse(c.AppURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return c.AppURL
	}
	return u.Scheme + "://" + u.Host
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppURL:      getEnv("APP_URL", "http://localhost:8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ContentPath: os.Getenv("CONTENT_PATH"),
		ResumePath:  getEnv("RESUME_PATH", "web/static/resume.pdf"),

		TrustedProxies: getList("TRUSTED_PROXIES"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("EMAIL_FROM"),
		},
		Contact: ContactConfig{
			OwnerEmail: os.Getenv("CONTACT_OWNER_EMAIL"),
			ClientSalt: getEnv("CONTACT_CLIENT_SALT", "portfolio"),
		},
		Waha: WahaConfig{
			BaseURL:     getEnv("WAHA_BASE_URL", "http://waha:3000"),
			APIKey:      os.Getenv("WAHA_API_KEY"),
			Session:     getEnv("WAHA_SESSION", "default"),
			ChatID:      os.Getenv("WAHA_CHAT_ID"),
			CountryCode: getEnv("WAHA_COUNTRY_CODE", "92"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
			PushTopic:       os.Getenv("PUSH_TOPIC"),
		},
	}

	var err error
	if cfg.Contact.DuplicateWindow, err = getDuration("CONTACT_DUPLICATE_WINDOW", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Contact.RateLimit, err = getInt64("CONTACT_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.Contact.RateWindow, err = getDuration("CONTACT_RATE_WINDOW", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Contact.SimulatedDelay, err = getDuration("CONTACT_SIMULATED_DELAY", time.Second); err != nil {
		return nil, err
	}
	maxAttempt, err := getInt64("CONTACT_MAX_ATTEMPT", 3)
	if err != nil {
		return nil, err
	}
	cfg.Contact.MaxAttempt = int(maxAttempt)
	if cfg.RoleInterval, err = getDuration("ROLE_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.WorkerInterval, err = getDuration("WORKER_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return n, nil
}
