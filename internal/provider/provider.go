package provider

import (
	"context"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

// Invoker fires a resolved integration for an event. Providers stay opaque:
// the invoker delivers the event payload to the integration's endpoint and
// reports success/failure plus latency in milliseconds.
type Invoker interface {
	Invoke(ctx context.Context, in models.Integration, event string, payload map[string]any) (int64, error)
}
