package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

func strPtr(s string) *string { return &s }

func orgWide(id, name, useCase string) models.Integration {
	return models.Integration{ID: id, OrgID: "org-1", Name: name, Provider: "genesys", Status: "active", UseCase: useCase}
}

func assistantScoped(id, name, useCase, assistantID string) models.Integration {
	in := orgWide(id, name, useCase)
	in.AssistantID = strPtr(assistantID)
	return in
}

func enabledPolicy(assistantID string) models.AssistantPolicy {
	p := models.DefaultPolicy(assistantID)
	p.IntegrationsEnabled = true
	return p
}

func TestPartitionExcludesInactiveAndForeign(t *testing.T) {
	inactive := orgWide("i1", "Dead-Org", UseCaseCallLogging)
	inactive.Status = "disabled"
	catalog := []models.Integration{
		orgWide("i2", "Genesys-Org", UseCaseCallLogging),
		assistantScoped("i3", "Genesys-A1", UseCaseCallLogging, "a1"),
		assistantScoped("i4", "Genesys-A2", UseCaseCallLogging, "a2"),
		inactive,
	}

	p := Partition(catalog, "a1")
	require.Len(t, p.OrgWide, 1)
	require.Len(t, p.AssistantSpecific, 1)
	assert.Equal(t, "i3", p.AssistantSpecific[0].ID)
	assert.Equal(t, "i2", p.OrgWide[0].ID)

	// a2's integration must never surface for a1, in any set.
	for _, in := range p.all() {
		assert.NotEqual(t, "i4", in.ID)
	}
}

func TestMatchUseCaseIncludesGeneralWildcard(t *testing.T) {
	set := []models.Integration{
		orgWide("i1", "Zendesk-Org", UseCaseTicketCreation),
		orgWide("i2", "Zapier-Org", UseCaseGeneral),
		orgWide("i3", "Genesys-Org", UseCaseCallLogging),
	}
	matches := MatchUseCase(set, UseCaseTicketCreation)
	require.Len(t, matches, 2)
	assert.Equal(t, "i1", matches[0].ID)
	assert.Equal(t, "i2", matches[1].ID)
}

func TestResolveDisabledWinsOverEverything(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		assistantScoped("i2", "Genesys-A1", UseCaseCallLogging, "a1"),
	}
	policy := models.DefaultPolicy("a1")
	policy.Selections[UseCaseCallLogging] = "i2"

	for _, uc := range []string{UseCaseKnowledgeBase, UseCaseCallLogging, UseCaseJobLogging, UseCaseTicketCreation, UseCaseContactSync} {
		res := Resolve(catalog, policy, uc)
		assert.False(t, res.Resolved())
		assert.Equal(t, SourceDisabled, res.Source)
	}
}

// Scenario: one active org-wide call_logging integration, org defaults on,
// no explicit selection.
func TestResolveImplicitOrgDefault(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}
	res := Resolve(catalog, enabledPolicy("a1"), UseCaseCallLogging)

	require.True(t, res.Resolved())
	assert.Equal(t, "Genesys-Org", res.Integration.Name)
	assert.Equal(t, SourceOrgDefault, res.Source)
}

// Scenario: explicit selection wins even when the org-wide row also matches.
func TestResolveExplicitSelectionWins(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		assistantScoped("i2", "Genesys-A1", UseCaseCallLogging, "a1"),
	}
	policy := enabledPolicy("a1")
	policy.Selections[UseCaseCallLogging] = "i2"

	res := Resolve(catalog, policy, UseCaseCallLogging)
	require.True(t, res.Resolved())
	assert.Equal(t, "Genesys-A1", res.Integration.Name)
	assert.Equal(t, SourceExplicit, res.Source)
}

func TestResolveExplicitSelectionWinsWithoutAnyFallbackFlag(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}
	policy := enabledPolicy("a1")
	policy.UseOrgDefaults = false
	policy.OverrideOrgSettings = false
	policy.Selections[UseCaseCallLogging] = "i1"

	res := Resolve(catalog, policy, UseCaseCallLogging)
	require.True(t, res.Resolved())
	assert.Equal(t, SourceExplicit, res.Source)
	assert.Equal(t, "i1", res.Integration.ID)
}

// An explicit pick of an org-wide integration stays explicit even when the
// assistant is otherwise sovereign.
func TestResolveExplicitOrgWidePickSurvivesOverride(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Zendesk-Org", UseCaseTicketCreation)}
	policy := enabledPolicy("a1")
	policy.OverrideOrgSettings = true
	policy.Selections[UseCaseTicketCreation] = "i1"

	res := Resolve(catalog, policy, UseCaseTicketCreation)
	require.True(t, res.Resolved())
	assert.Equal(t, SourceExplicit, res.Source)
}

// Scenario: override on, no explicit selection, no assistant-scoped match.
// The org-wide candidate must be suppressed entirely.
func TestResolveOverrideSuppressesOrgWide(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}
	policy := enabledPolicy("a1")
	policy.OverrideOrgSettings = true

	res := Resolve(catalog, policy, UseCaseCallLogging)
	assert.False(t, res.Resolved())
	assert.Equal(t, SourceUnconfigured, res.Source)
	assert.Equal(t, "NO_ASSISTANT_SCOPED_MATCH", res.ReasonCode)
}

func TestResolveOverridePicksAssistantScoped(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		assistantScoped("i2", "Genesys-A1", UseCaseCallLogging, "a1"),
	}
	policy := enabledPolicy("a1")
	policy.OverrideOrgSettings = true

	res := Resolve(catalog, policy, UseCaseCallLogging)
	require.True(t, res.Resolved())
	assert.Equal(t, "i2", res.Integration.ID)
	assert.Equal(t, SourceAssistantDefault, res.Source)
}

// overrideOrgSettings=true plus useOrgDefaults=true behaves exactly like
// override alone.
func TestResolveOverrideIdempotentWithOrgDefaults(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		assistantScoped("i2", "Genesys-A1", UseCaseContactSync, "a1"),
	}
	overrideOnly := enabledPolicy("a1")
	overrideOnly.OverrideOrgSettings = true
	overrideOnly.UseOrgDefaults = false

	both := enabledPolicy("a1")
	both.OverrideOrgSettings = true
	both.UseOrgDefaults = true

	for _, uc := range []string{UseCaseCallLogging, UseCaseContactSync, UseCaseTicketCreation} {
		a := Resolve(catalog, overrideOnly, uc)
		b := Resolve(catalog, both, uc)
		assert.Equal(t, a.Source, b.Source, "use case %s", uc)
		assert.Equal(t, a.Resolved(), b.Resolved(), "use case %s", uc)
		if a.Resolved() {
			assert.Equal(t, a.Integration.ID, b.Integration.ID)
		}
	}
}

// Scenario: two active org-wide ticket_creation integrations must surface as
// an ambiguous outcome, never an arbitrary pick.
func TestResolveAmbiguousOrgWide(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Zendesk-Org", UseCaseTicketCreation),
		orgWide("i2", "Freshdesk-Org", UseCaseTicketCreation),
	}
	res := Resolve(catalog, enabledPolicy("a1"), UseCaseTicketCreation)

	assert.False(t, res.Resolved())
	assert.True(t, res.Ambiguous())
	require.Len(t, res.Candidates, 2)
}

// Scenario: stale explicit selection degrades to the org-wide fallback.
func TestResolveStaleSelectionFallsThrough(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Zendesk-Org", UseCaseTicketCreation)}
	policy := enabledPolicy("a1")
	policy.Selections[UseCaseTicketCreation] = "I-404"

	res := Resolve(catalog, policy, UseCaseTicketCreation)
	require.True(t, res.Resolved())
	assert.Equal(t, "Zendesk-Org", res.Integration.Name)
	assert.Equal(t, SourceOrgDefault, res.Source)
}

func TestResolveDeactivatedSelectionFallsThrough(t *testing.T) {
	dead := orgWide("i1", "Zendesk-Dead", UseCaseTicketCreation)
	dead.Status = "disabled"
	catalog := []models.Integration{dead, orgWide("i2", "Zendesk-Org", UseCaseTicketCreation)}
	policy := enabledPolicy("a1")
	policy.Selections[UseCaseTicketCreation] = "i1"

	res := Resolve(catalog, policy, UseCaseTicketCreation)
	require.True(t, res.Resolved())
	assert.Equal(t, "i2", res.Integration.ID)
}

// A selection pointing at another assistant's integration is stale, not a
// leak: partitioning hides the row before validity is checked.
func TestResolveForeignSelectionTreatedAsStale(t *testing.T) {
	catalog := []models.Integration{
		assistantScoped("i1", "Genesys-A2", UseCaseCallLogging, "a2"),
		orgWide("i2", "Genesys-Org", UseCaseCallLogging),
	}
	policy := enabledPolicy("a1")
	policy.Selections[UseCaseCallLogging] = "i1"

	res := Resolve(catalog, policy, UseCaseCallLogging)
	require.True(t, res.Resolved())
	assert.Equal(t, "i2", res.Integration.ID)
	assert.Equal(t, SourceOrgDefault, res.Source)
}

func TestResolveNoFallbackEnabled(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}
	policy := enabledPolicy("a1")
	policy.UseOrgDefaults = false

	res := Resolve(catalog, policy, UseCaseCallLogging)
	assert.False(t, res.Resolved())
	assert.Equal(t, SourceNoFallback, res.Source)
}

func TestExplainMatchesResolution(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}

	res := Resolve(catalog, enabledPolicy("a1"), UseCaseCallLogging)
	assert.Equal(t, "Will use Genesys-Org (organization default)", Explain(res))

	disabled := Resolve(catalog, models.DefaultPolicy("a1"), UseCaseCallLogging)
	assert.Equal(t, "Integrations are turned off for this assistant", Explain(disabled))

	missing := Resolve(catalog, enabledPolicy("a1"), UseCaseJobLogging)
	assert.Equal(t, "No integration configured for job_logging", Explain(missing))
}

func TestNormalizeUseCase(t *testing.T) {
	assert.Equal(t, UseCaseKnowledgeBase, NormalizeUseCase(" KB "))
	assert.Equal(t, UseCaseCallLogging, NormalizeUseCase("Call-Logging"))
	assert.Equal(t, UseCaseJobLogging, NormalizeUseCase("work order logging"))
	assert.Equal(t, UseCaseGeneral, NormalizeUseCase("General"))
}

func TestProviderCategoryFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, CategoryTelephony, ProviderCategory("Genesys"))
	assert.Equal(t, CategoryFieldService, ProviderCategory("HousecallPro"))
	assert.Equal(t, CategoryGeneric, ProviderCategory("some-new-vendor"))
}
