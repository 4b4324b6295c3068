package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notifier defines the interface for the failed-login side-channel
type Notifier interface {
	NotifyFailedLogin(ctx context.Context, username string) error
}

// WebhookConfig holds configuration for the webhook notifier
type WebhookConfig struct {
	// Endpoint receiving failed-login events; empty disables delivery
	Endpoint string
	Timeout  time.Duration
}

// WebhookNotifier delivers failed-login events to an external HTTP endpoint.
// Delivery is best-effort; callers are expected to log and drop errors.
type WebhookNotifier struct {
	config WebhookConfig
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookNotifier creates a new WebhookNotifier
func NewWebhookNotifier(config WebhookConfig, logger zerolog.Logger) *WebhookNotifier {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

type failedLoginEvent struct {
	Event    string `json:"event"`
	Username string `json:"username"`
}

// NotifyFailedLogin posts a failed-login event for the given username.
// If no endpoint is configured the event is only logged (for development).
func (n *WebhookNotifier) NotifyFailedLogin(ctx context.Context, username string) error {
	if n.config.Endpoint == "" {
		n.logger.Debug().
			Str("username", username).
			Msg("Failed-login webhook not configured - event not delivered")
		return nil
	}

	payload, err := json.Marshal(failedLoginEvent{
		Event:    "failed_auth",
		Username: username,
	})
	if err != nil {
		return fmt.Errorf("failed to encode failed-login event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver failed-login event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed-login webhook returned status %d", resp.StatusCode)
	}

	return nil
}
