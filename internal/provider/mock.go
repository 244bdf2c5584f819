package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

type Invocation struct {
	IntegrationID string
	Event         string
	Payload       map[string]any
}

// MockInvoker records invocations instead of calling out. FailFor lists
// integration ids whose invocations should report failure.
type MockInvoker struct {
	mu          sync.Mutex
	Invocations []Invocation
	FailFor     map[string]bool
}

func (m *MockInvoker) Invoke(ctx context.Context, in models.Integration, event string, payload map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invocations = append(m.Invocations, Invocation{IntegrationID: in.ID, Event: event, Payload: payload})
	if m.FailFor[in.ID] {
		return 0, fmt.Errorf("mock failure for integration %s", in.ID)
	}
	return 1, nil
}

func (m *MockInvoker) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Invocations)
}
