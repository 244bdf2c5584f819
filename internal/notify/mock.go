package notify

import (
	"context"
	"sync"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

// MockMailer records what would have been sent. Used when BREVO_API_KEY is
// unset and in tests.
type MockMailer struct {
	mu         sync.Mutex
	Contacts   []models.ContactSubmission
	Structured []StructuredRequest
	Err        error
}

func (m *MockMailer) SendContactNotification(ctx context.Context, cs models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Contacts = append(m.Contacts, cs)
	return nil
}

func (m *MockMailer) SendStructuredRequest(ctx context.Context, req StructuredRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Structured = append(m.Structured, req)
	return nil
}

func (m *MockMailer) Sent() (contacts int, structured int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Contacts), len(m.Structured)
}
