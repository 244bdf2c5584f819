package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

// Mailer sends the transactional emails the receptionist product produces:
// contact-form notifications and structured request emails captured by the
// voice assistant.
type Mailer interface {
	SendContactNotification(ctx context.Context, cs models.ContactSubmission) error
	SendStructuredRequest(ctx context.Context, req StructuredRequest) error
}

// StructuredRequest is the payload the voice assistant's send_structured_email
// tool posts when a caller asks for a follow-up.
type StructuredRequest struct {
	To              string `json:"to,omitempty"`
	Subject         string `json:"subject"`
	RequestType     string `json:"request_type"`
	ResidentName    string `json:"resident_name"`
	ResidentPhone   string `json:"resident_phone"`
	ResidentEmail   string `json:"resident_email,omitempty"`
	Address         string `json:"address"`
	PreferredMethod string `json:"preferred_contact_method,omitempty"`
	Urgency         string `json:"urgency,omitempty"`
	Details         string `json:"details"`
	ExtraMetadata   string `json:"extra_metadata,omitempty"`
}

// DeliveryError means the provider accepted the request but did not confirm
// delivery, or rejected it outright.
type DeliveryError struct {
	Reason string
}

func (e DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %s", e.Reason)
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}
