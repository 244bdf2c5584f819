package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

func TestEventUseCasesUnknownEvent(t *testing.T) {
	_, ok := EventUseCases("call.teleported")
	assert.False(t, ok)
}

func TestResolveEventReturnsOneResultPerUseCase(t *testing.T) {
	catalog := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		orgWide("i2", "Zendesk-Org", UseCaseTicketCreation),
	}
	results, ok := ResolveEvent(catalog, enabledPolicy("a1"), EventCallWrapup)
	require.True(t, ok)
	require.Len(t, results, 3)

	assert.Equal(t, UseCaseCallLogging, results[0].UseCase)
	assert.Equal(t, UseCaseTicketCreation, results[1].UseCase)
	assert.Equal(t, UseCaseContactSync, results[2].UseCase)

	assert.True(t, results[0].Resolved())
	assert.True(t, results[1].Resolved())
	// contact_sync has no integration configured, and that must not be an
	// error for the sibling use cases.
	assert.False(t, results[2].Resolved())
	assert.Equal(t, SourceUnconfigured, results[2].Source)
}

func TestResolveEventUseCasesAreIndependent(t *testing.T) {
	full := []models.Integration{
		orgWide("i1", "Genesys-Org", UseCaseCallLogging),
		orgWide("i2", "Zendesk-Org", UseCaseTicketCreation),
	}
	withoutTickets := []models.Integration{full[0]}

	policy := enabledPolicy("a1")
	before, ok := ResolveEvent(full, policy, EventCallWrapup)
	require.True(t, ok)
	after, ok := ResolveEvent(withoutTickets, policy, EventCallWrapup)
	require.True(t, ok)

	require.Len(t, after, len(before))
	// Dropping the ticketing integration changes only its own slot.
	assert.Equal(t, before[0].Integration.ID, after[0].Integration.ID)
	assert.False(t, after[1].Resolved())
	assert.Equal(t, before[2].Source, after[2].Source)
}

func TestResolveEventDisabledAssistant(t *testing.T) {
	catalog := []models.Integration{orgWide("i1", "Genesys-Org", UseCaseCallLogging)}
	results, ok := ResolveEvent(catalog, models.DefaultPolicy("a1"), EventCallEnded)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, SourceDisabled, results[0].Source)
}

func TestResolveEventUnknownEvent(t *testing.T) {
	results, ok := ResolveEvent(nil, enabledPolicy("a1"), "nope")
	assert.False(t, ok)
	assert.Nil(t, results)
}
