package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

func TestBrevoSendContactNotification(t *testing.T) {
	var received brevoEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/smtp/email" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"messageId": "msg-1"})
	}))
	defer srv.Close()

	m := BrevoMailer{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		SenderEmail:    "noreply@example.com",
		SenderName:     "Aspire AI",
		RecipientEmail: "office@example.com",
	}
	cs := models.ContactSubmission{Name: "Jan", Email: "jan@example.com", Phone: "555", Message: "hello"}
	if err := m.SendContactNotification(context.Background(), cs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Subject != "New Contact Form Submission" {
		t.Fatalf("unexpected subject: %s", received.Subject)
	}
	if len(received.To) != 1 || received.To[0].Email != "office@example.com" {
		t.Fatalf("unexpected recipient: %+v", received.To)
	}
}

func TestBrevoMissingMessageIDIsDeliveryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	m := BrevoMailer{BaseURL: srv.URL, APIKey: "k", SenderEmail: "a@b.c", RecipientEmail: "d@e.f"}
	err := m.SendStructuredRequest(context.Background(), StructuredRequest{Subject: "s", Details: "d"})
	var de DeliveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeliveryError, got %v", err)
	}
}

func TestBrevoRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := BrevoMailer{BaseURL: srv.URL, APIKey: "k", SenderEmail: "a@b.c", RecipientEmail: "d@e.f"}
	err := m.SendContactNotification(context.Background(), models.ContactSubmission{})
	var rl RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.RetryAfter.Seconds() != 30 {
		t.Fatalf("expected 30s retry-after, got %s", rl.RetryAfter)
	}
}

func TestStructuredRequestDefaultsToRecipient(t *testing.T) {
	var received brevoEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		_ = json.NewEncoder(w).Encode(map[string]string{"messageId": "msg-2"})
	}))
	defer srv.Close()

	m := BrevoMailer{BaseURL: srv.URL, APIKey: "k", SenderEmail: "a@b.c", RecipientEmail: "fallback@example.com"}
	req := StructuredRequest{Subject: "Bin collection", RequestType: "waste", ResidentName: "Sam", Details: "missed bin"}
	if err := m.SendStructuredRequest(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.To[0].Email != "fallback@example.com" {
		t.Fatalf("expected fallback recipient, got %+v", received.To)
	}
}
