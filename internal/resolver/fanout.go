package resolver

import "github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"

// Business events produced around a call or admin action.
const (
	EventCallEnded       = "call.ended"
	EventCallWrapup      = "call.wrapup"
	EventTicketNeeded    = "call.ticket_needed"
	EventJobRequested    = "call.job_requested"
	EventKBImport        = "kb.import_requested"
	EventContactCaptured = "contact.captured"
)

// eventRoutes declares which use cases an event is relevant to. Order here is
// the order of the returned invocation plan.
var eventRoutes = map[string][]string{
	EventCallEnded:       {UseCaseCallLogging},
	EventCallWrapup:      {UseCaseCallLogging, UseCaseTicketCreation, UseCaseContactSync},
	EventTicketNeeded:    {UseCaseTicketCreation},
	EventJobRequested:    {UseCaseJobLogging},
	EventKBImport:        {UseCaseKnowledgeBase},
	EventContactCaptured: {UseCaseContactSync},
}

// EventUseCases returns the use cases an event maps to, and whether the event
// is known at all.
func EventUseCases(event string) ([]string, bool) {
	routes, ok := eventRoutes[NormalizeEvent(event)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(routes))
	copy(out, routes)
	return out, true
}

func NormalizeEvent(value string) string {
	return NormalizeStatus(value)
}

// ResolveEvent builds the invocation plan for an event: one ResolutionResult
// per relevant use case, each resolved independently. An unconfigured or
// ambiguous outcome for one use case never blocks the others. Returns false
// when the event is not in the routing table.
func ResolveEvent(catalog []models.Integration, policy models.AssistantPolicy, event string) ([]ResolutionResult, bool) {
	useCases, ok := EventUseCases(event)
	if !ok {
		return nil, false
	}
	results := make([]ResolutionResult, 0, len(useCases))
	for _, uc := range useCases {
		results = append(results, Resolve(catalog, policy, uc))
	}
	return results, true
}
