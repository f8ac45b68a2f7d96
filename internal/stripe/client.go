// Package stripe is a minimal payment-intent client for the Stripe HTTP
// API. Only the operations the booking lifecycle needs are implemented:
// intent creation, intent retrieval and webhook signature verification.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("stripe: secret key not configured")
)

type Config struct {
	SecretKey     string
	WebhookSecret string
	// APIBase overrides the endpoint, used by tests against httptest servers.
	APIBase string
}

type Client struct {
	secretKey     string
	webhookSecret string
	apiBase       string
	http          *http.Client
}

func New(cfg Config) *Client {
	base := cfg.APIBase
	if base == "" {
		base = "https://api.stripe.com"
	}
	return &Client{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		apiBase:       strings.TrimRight(base, "/"),
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.secretKey != ""
}

// Intent is the subset of a Stripe PaymentIntent the lifecycle consumes.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentRequest describes a new payment intent. Amount is in minor
// currency units.
type IntentRequest struct {
	Amount       int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.ReceiptEmail != "" {
		form.Set("receipt_email", req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	form.Set("automatic_payment_methods[enabled]", "true")

	return c.doIntent(ctx, http.MethodPost, "/v1/payment_intents", strings.NewReader(form.Encode()))
}

func (c *Client) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	return c.doIntent(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil)
}

func (c *Client) doIntent(ctx context.Context, method, path string, body io.Reader) (*Intent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stripe: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s: %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("stripe: decode response: %w", err)
	}
	return &intent, nil
}
