package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

// BrevoMailer sends through the Brevo transactional email API.
type BrevoMailer struct {
	BaseURL        string
	APIKey         string
	SenderEmail    string
	SenderName     string
	RecipientEmail string
	Client         *http.Client
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (m BrevoMailer) SendContactNotification(ctx context.Context, cs models.ContactSubmission) error {
	body := fmt.Sprintf(`
		<h2>New Contact Form Submission</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Message:</strong> %s</p>
	`, html.EscapeString(cs.Name), html.EscapeString(cs.Email), html.EscapeString(cs.Phone), html.EscapeString(cs.Message))

	return m.send(ctx, brevoEmail{
		Sender:      brevoAddress{Email: m.SenderEmail, Name: m.SenderName},
		To:          []brevoAddress{{Email: m.RecipientEmail}},
		Subject:     "New Contact Form Submission",
		HTMLContent: body,
	})
}

func (m BrevoMailer) SendStructuredRequest(ctx context.Context, req StructuredRequest) error {
	recipient := req.To
	if recipient == "" {
		recipient = m.RecipientEmail
	}
	subject := req.Subject
	if subject == "" {
		subject = "New Structured Request"
	}

	return m.send(ctx, brevoEmail{
		Sender:      brevoAddress{Email: m.SenderEmail, Name: m.SenderName},
		To:          []brevoAddress{{Email: recipient}},
		Subject:     subject,
		HTMLContent: buildStructuredRequestHTML(req),
	})
}

func buildStructuredRequestHTML(req StructuredRequest) string {
	orNA := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "N/A"
		}
		return html.EscapeString(v)
	}
	urgency := req.Urgency
	if strings.TrimSpace(urgency) == "" {
		urgency = "Normal"
	}
	return fmt.Sprintf(`
		<h2>New Request – %s</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Address:</strong> %s</p>
		<p><strong>Preferred contact:</strong> %s</p>
		<p><strong>Urgency:</strong> %s</p>
		<p><strong>Details:</strong><br>%s</p>
		<h3>Extra metadata</h3>
		<pre>%s</pre>
	`, html.EscapeString(req.RequestType), html.EscapeString(req.ResidentName), html.EscapeString(req.ResidentPhone),
		orNA(req.ResidentEmail), html.EscapeString(req.Address), orNA(req.PreferredMethod),
		html.EscapeString(urgency), html.EscapeString(req.Details), html.EscapeString(req.ExtraMetadata))
}

func (m BrevoMailer) send(ctx context.Context, email brevoEmail) error {
	if strings.TrimSpace(m.APIKey) == "" {
		return DeliveryError{Reason: "BREVO_API_KEY is not set"}
	}
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := m.BaseURL
	if baseURL == "" {
		baseURL = "https://api.brevo.com"
	}

	b, _ := json.Marshal(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/v3/smtp/email", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return DeliveryError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			return RateLimitError{RetryAfter: time.Duration(secs) * time.Second}
		}
		return RateLimitError{}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return DeliveryError{Reason: fmt.Sprintf("brevo api error: %s: %v", resp.Status, errBody)}
	}

	var result struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return DeliveryError{Reason: "unreadable brevo response"}
	}
	// Brevo confirms delivery with a messageId; anything else is a failure.
	if result.MessageID == "" {
		return DeliveryError{Reason: "brevo did not confirm delivery (no messageId)"}
	}
	return nil
}
