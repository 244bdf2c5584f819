package models

import "time"

// Integration is a configured connector to an external system. A nil
// AssistantID means the integration is organization-wide; otherwise it is
// private to that assistant.
type Integration struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	AssistantID *string   `json:"assistant_id"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	Direction   string    `json:"direction"`
	Status      string    `json:"status"`
	UseCase     string    `json:"use_case"`
	Endpoint    string    `json:"endpoint,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Assistant struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// AssistantPolicy holds per-assistant integration override state.
// Selections maps a use case to an explicitly chosen integration id.
type AssistantPolicy struct {
	AssistantID         string            `json:"assistant_id"`
	IntegrationsEnabled bool              `json:"integrations_enabled"`
	UseOrgDefaults      bool              `json:"use_org_defaults"`
	OverrideOrgSettings bool              `json:"override_org_settings"`
	Selections          map[string]string `json:"selections"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// DefaultPolicy is the state every assistant starts with: integrations off,
// org defaults allowed once they are turned on, nothing selected.
func DefaultPolicy(assistantID string) AssistantPolicy {
	return AssistantPolicy{
		AssistantID:         assistantID,
		IntegrationsEnabled: false,
		UseOrgDefaults:      true,
		OverrideOrgSettings: false,
		Selections:          map[string]string{},
		UpdatedAt:           time.Now().UTC(),
	}
}

type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// EventDelivery records one use case of a dispatched event: what was resolved
// and whether the provider call succeeded.
type EventDelivery struct {
	ID            string    `json:"id"`
	AssistantID   string    `json:"assistant_id"`
	Event         string    `json:"event"`
	UseCase       string    `json:"use_case"`
	IntegrationID *string   `json:"integration_id"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	Detail        []byte    `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
