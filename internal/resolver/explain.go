package resolver

import (
	"fmt"
	"strings"
)

// Explain renders the badge text the settings UI shows next to a use case.
// It is a pure projection of an already-computed ResolutionResult, so the
// badge can never disagree with what Resolve decided.
func Explain(result ResolutionResult) string {
	switch result.Source {
	case SourceDisabled:
		return "Integrations are turned off for this assistant"
	case SourceExplicit:
		return fmt.Sprintf("Will use %s (explicitly selected)", result.Integration.Name)
	case SourceAssistantDefault:
		return fmt.Sprintf("Will use %s (assistant-specific)", result.Integration.Name)
	case SourceOrgDefault:
		return fmt.Sprintf("Will use %s (organization default)", result.Integration.Name)
	case SourceAmbiguous:
		names := make([]string, 0, len(result.Candidates))
		for _, c := range result.Candidates {
			names = append(names, c.Name)
		}
		return fmt.Sprintf("Multiple integrations match (%s); select one explicitly", strings.Join(names, ", "))
	default:
		return fmt.Sprintf("No integration configured for %s", result.UseCase)
	}
}
