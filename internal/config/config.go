package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Config carries everything the server reads from the environment. The
// payment processor block is optional; the rest is required at startup.
type Config struct {
	DatabaseURL string
	ListenAddr  string

	JWTSecret string
	JWTExpire time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIBase       string

	Currency string
}

// Load reads the environment and validates it. It fails hard on a missing
// JWT secret so the server never issues unverifiable tokens.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ListenAddr:          envOrDefault("LISTEN_ADDR", ":8080"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpire:           parseDuration(envOrDefault("JWT_EXPIRE", "168h")),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIBase:       envOrDefault("STRIPE_API_BASE", "https://api.stripe.com"),
		Currency:            envOrDefault("CURRENCY", "ZAR"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	if cfg.StripeSecretKey != "" && !strings.HasPrefix(cfg.StripeSecretKey, "sk_") {
		// A pk_* value here means the publishable key was pasted where the
		// secret key belongs. Refuse to treat the processor as configured.
		if strings.HasPrefix(cfg.StripeSecretKey, "pk_") {
			log.Printf("level=error msg=STRIPE_SECRET_KEY holds a publishable key, expected a secret key (sk_...)")
		} else {
			log.Printf("level=error msg=STRIPE_SECRET_KEY has unexpected format, expected sk_test_ or sk_live_ prefix")
		}
		cfg.StripeSecretKey = ""
	}
	if cfg.StripeSecretKey == "" {
		log.Printf("level=warn msg=payment processor not configured, payment endpoints will report service unavailable")
	}

	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}
