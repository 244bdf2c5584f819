package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

// WebhookInvoker POSTs the event envelope to the integration's configured
// endpoint. All providers are driven the same way; provider-specific adapters
// live behind those endpoints, outside this service.
type WebhookInvoker struct {
	Timeout time.Duration
	Client  *http.Client
}

type eventEnvelope struct {
	Event       string         `json:"event"`
	Provider    string         `json:"provider"`
	UseCase     string         `json:"use_case"`
	Integration string         `json:"integration_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	SentAt      time.Time      `json:"sent_at"`
}

func (w WebhookInvoker) Invoke(ctx context.Context, in models.Integration, event string, payload map[string]any) (int64, error) {
	start := time.Now()
	if strings.TrimSpace(in.Endpoint) == "" {
		return 0, fmt.Errorf("integration %s has no endpoint configured", in.ID)
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	b, _ := json.Marshal(eventEnvelope{
		Event:       event,
		Provider:    in.Provider,
		UseCase:     in.UseCase,
		Integration: in.ID,
		Payload:     payload,
		SentAt:      time.Now().UTC(),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, in.Endpoint, bytes.NewReader(b))
	if err != nil {
		return time.Since(start).Milliseconds(), err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return time.Since(start).Milliseconds(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return time.Since(start).Milliseconds(), fmt.Errorf("provider %s returned %s", in.Provider, resp.Status)
	}
	return time.Since(start).Milliseconds(), nil
}
