package resolver

import (
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

const (
	UseCaseKnowledgeBase  = "knowledge_base"
	UseCaseCallLogging    = "call_logging"
	UseCaseJobLogging     = "job_logging"
	UseCaseTicketCreation = "ticket_creation"
	UseCaseContactSync    = "contact_sync"

	// UseCaseGeneral matches any use case during candidate matching.
	UseCaseGeneral = "general"
)

const StatusActive = "active"

// Source tags say which precedence rule produced a result.
const (
	SourceExplicit         = "EXPLICIT_SELECTION"
	SourceAssistantDefault = "ASSISTANT_DEFAULT"
	SourceOrgDefault       = "ORG_DEFAULT"
	SourceAmbiguous        = "AMBIGUOUS"
	SourceDisabled         = "INTEGRATIONS_DISABLED"
	SourceUnconfigured     = "UNCONFIGURED"
	SourceNoFallback       = "NO_FALLBACK_ENABLED"
)

// ResolutionResult is the outcome for one (assistant, use case) pair.
// Integration is nil unless the use case resolved to exactly one integration.
// Candidates is populated only for the ambiguous outcome, so the caller can
// prompt for an explicit pick instead of guessing.
type ResolutionResult struct {
	UseCase     string               `json:"use_case"`
	Integration *models.Integration  `json:"integration,omitempty"`
	Candidates  []models.Integration `json:"candidates,omitempty"`
	Source      string               `json:"source"`
	ReasonCode  string               `json:"reason_code"`
	ReasonText  string               `json:"reason_text"`
	Stages      []ResolutionStage    `json:"stages,omitempty"`
}

type ResolutionStage struct {
	Name       string
	Candidates []models.Integration
}

// Resolved reports whether the use case ended with a single runnable
// integration. Ambiguous, disabled and unconfigured outcomes all return false.
func (r ResolutionResult) Resolved() bool {
	return r.Integration != nil
}

func (r ResolutionResult) Ambiguous() bool {
	return r.Source == SourceAmbiguous
}

// PartitionedCatalog is the slice of the org catalog visible to one assistant.
type PartitionedCatalog struct {
	AssistantSpecific []models.Integration
	OrgWide           []models.Integration
}

// Partition filters an organization catalog down to what one assistant may
// see: active org-wide rows and active rows scoped to exactly that assistant.
// Rows scoped to a different assistant never appear in either set.
func Partition(catalog []models.Integration, assistantID string) PartitionedCatalog {
	var p PartitionedCatalog
	for _, in := range catalog {
		if NormalizeStatus(in.Status) != StatusActive {
			continue
		}
		if in.AssistantID == nil {
			p.OrgWide = append(p.OrgWide, in)
			continue
		}
		if *in.AssistantID == assistantID {
			p.AssistantSpecific = append(p.AssistantSpecific, in)
		}
	}
	return p
}

func (p PartitionedCatalog) all() []models.Integration {
	out := make([]models.Integration, 0, len(p.AssistantSpecific)+len(p.OrgWide))
	out = append(out, p.AssistantSpecific...)
	out = append(out, p.OrgWide...)
	return out
}

// MatchUseCase returns every integration in the set whose use case equals the
// target or is the general wildcard. No ordering or priority is implied;
// more than one match for the same scope is an ambiguity the caller must
// surface, never silently break.
func MatchUseCase(set []models.Integration, useCase string) []models.Integration {
	target := NormalizeUseCase(useCase)
	out := make([]models.Integration, 0, len(set))
	for _, in := range set {
		uc := NormalizeUseCase(in.UseCase)
		if uc == target || uc == UseCaseGeneral {
			out = append(out, in)
		}
	}
	return out
}

// Resolve computes the effective integration for one use case under the
// assistant's policy. Precedence, strictly in order: master switch off,
// explicit selection (stale falls through), override-org-settings
// (assistant-scoped only), use-org-defaults (org-wide), nothing enabled.
func Resolve(catalog []models.Integration, policy models.AssistantPolicy, useCase string) ResolutionResult {
	useCase = NormalizeUseCase(useCase)
	result := ResolutionResult{UseCase: useCase}

	if !policy.IntegrationsEnabled {
		result.Source = SourceDisabled
		result.ReasonCode = "INTEGRATIONS_DISABLED"
		result.ReasonText = "Integrations are turned off for this assistant"
		return result
	}

	visible := Partition(catalog, policy.AssistantID)
	result.Stages = append(result.Stages, ResolutionStage{
		Name:       "visible_catalog",
		Candidates: visible.all(),
	})

	if selectedID, ok := policy.Selections[useCase]; ok && selectedID != "" {
		selected := findByID(visible.all(), selectedID)
		var stage []models.Integration
		if selected != nil {
			stage = []models.Integration{*selected}
		}
		result.Stages = append(result.Stages, ResolutionStage{
			Name:       "explicit_selection",
			Candidates: stage,
		})
		if selected != nil {
			result.Integration = selected
			result.Source = SourceExplicit
			result.ReasonCode = "EXPLICIT_SELECTION"
			result.ReasonText = "Explicitly selected for this use case"
			return result
		}
		// Selection points at an integration that is gone, inactive, or
		// belongs to another assistant. Treat as unset and fall through.
	}

	if policy.OverrideOrgSettings {
		matches := MatchUseCase(visible.AssistantSpecific, useCase)
		result.Stages = append(result.Stages, ResolutionStage{
			Name:       "assistant_scoped",
			Candidates: matches,
		})
		return finishFallback(result, matches, SourceAssistantDefault,
			"NO_ASSISTANT_SCOPED_MATCH", "No assistant-specific integration for this use case",
			"Assistant-specific integration applied")
	}

	if policy.UseOrgDefaults {
		matches := MatchUseCase(visible.OrgWide, useCase)
		result.Stages = append(result.Stages, ResolutionStage{
			Name:       "org_wide",
			Candidates: matches,
		})
		return finishFallback(result, matches, SourceOrgDefault,
			"NO_ORG_WIDE_MATCH", "No organization-wide integration for this use case",
			"Organization default applied")
	}

	result.Source = SourceNoFallback
	result.ReasonCode = "NO_FALLBACK_ENABLED"
	result.ReasonText = "No explicit selection and no fallback rule enabled"
	return result
}

func finishFallback(result ResolutionResult, matches []models.Integration, source, emptyCode, emptyText, okText string) ResolutionResult {
	switch len(matches) {
	case 0:
		result.Source = SourceUnconfigured
		result.ReasonCode = emptyCode
		result.ReasonText = emptyText
	case 1:
		in := matches[0]
		result.Integration = &in
		result.Source = source
		result.ReasonCode = source
		result.ReasonText = okText
	default:
		result.Candidates = matches
		result.Source = SourceAmbiguous
		result.ReasonCode = "AMBIGUOUS_MATCH"
		result.ReasonText = "More than one integration matches this use case; select one explicitly"
	}
	return result
}

func findByID(set []models.Integration, id string) *models.Integration {
	for i := range set {
		if set[i].ID == id {
			in := set[i]
			return &in
		}
	}
	return nil
}
