package statemachine

import (
	"testing"

	entity "campusx/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatuses(t *testing.T) {
	assert.Empty(t, NextStatuses(entity.ExchangeCompleted))
	assert.Empty(t, NextStatuses(entity.ExchangeCancelled))
	assert.Empty(t, NextStatuses(entity.ExchangeRejected))

	next := NextStatuses(entity.ExchangePending)
	require.Len(t, next, 3)
	assert.Contains(t, next, entity.ExchangeInProgress)
	assert.Contains(t, next, entity.ExchangeRejected)
	assert.Contains(t, next, entity.ExchangeCancelled)
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []entity.ExchangeStatus{entity.ExchangeCompleted, entity.ExchangeCancelled, entity.ExchangeRejected} {
		assert.True(t, IsTerminal(s), s)
	}
	for _, s := range []entity.ExchangeStatus{entity.ExchangePending, entity.ExchangeAccepted, entity.ExchangeInProgress} {
		assert.False(t, IsTerminal(s), s)
	}
}

func TestIsValidTransition(t *testing.T) {
	assert.True(t, IsValidTransition(entity.ExchangePending, entity.ExchangeInProgress))
	// accepted was retired for new writes; pending moves straight to in_progress
	assert.False(t, IsValidTransition(entity.ExchangePending, entity.ExchangeAccepted))
	// no skipping ahead
	assert.False(t, IsValidTransition(entity.ExchangePending, entity.ExchangeCompleted))
	// legacy rows stay actable
	assert.True(t, IsValidTransition(entity.ExchangeAccepted, entity.ExchangeInProgress))
	assert.True(t, IsValidTransition(entity.ExchangeAccepted, entity.ExchangeCancelled))
}

func TestValidateTransition_SelfIsIdempotent(t *testing.T) {
	for status := range transitionTable {
		assert.NoError(t, ValidateTransition(status, status), status)
	}
}

func TestValidateTransition_TerminalStates(t *testing.T) {
	targets := []entity.ExchangeStatus{
		entity.ExchangePending, entity.ExchangeInProgress, entity.ExchangeCompleted,
		entity.ExchangeCancelled, entity.ExchangeRejected,
	}
	for _, terminal := range []entity.ExchangeStatus{entity.ExchangeCompleted, entity.ExchangeCancelled, entity.ExchangeRejected} {
		for _, target := range targets {
			if target == terminal {
				continue
			}
			err := ValidateTransition(terminal, target)
			require.Error(t, err)
			var tErr *TransitionError
			require.ErrorAs(t, err, &tErr)
			assert.True(t, tErr.Terminal)
			assert.Contains(t, err.Error(), terminal.String())
		}
	}
}

func TestValidateTransition_InvalidNamesAllowedSet(t *testing.T) {
	err := ValidateTransition(entity.ExchangePending, entity.ExchangeCompleted)
	require.Error(t, err)
	var tErr *TransitionError
	require.ErrorAs(t, err, &tErr)
	assert.False(t, tErr.Terminal)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "in_progress, rejected, cancelled")
}

func TestAllowedActions(t *testing.T) {
	owner := AllowedActions(entity.ExchangePending, entity.RoleOwner)
	assert.Contains(t, owner, entity.ActionAccept)
	assert.Contains(t, owner, entity.ActionReject)
	assert.NotContains(t, owner, entity.ActionCancel)

	requester := AllowedActions(entity.ExchangePending, entity.RoleRequester)
	assert.Contains(t, requester, entity.ActionCancel)
	assert.NotContains(t, requester, entity.ActionAccept)

	for _, status := range []entity.ExchangeStatus{entity.ExchangeAccepted, entity.ExchangeInProgress} {
		for _, role := range []entity.ExchangeRole{entity.RoleOwner, entity.RoleRequester} {
			actions := AllowedActions(status, role)
			assert.Contains(t, actions, entity.ActionCancel)
			assert.Contains(t, actions, entity.ActionConfirm)
		}
	}

	for _, status := range []entity.ExchangeStatus{entity.ExchangeCompleted, entity.ExchangeCancelled, entity.ExchangeRejected} {
		assert.Empty(t, AllowedActions(status, entity.RoleOwner), status)
		assert.Empty(t, AllowedActions(status, entity.RoleRequester), status)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, entity.ExchangeInProgress, entity.ExchangeAccepted.Normalize())
	assert.Equal(t, entity.ExchangePending, entity.ExchangePending.Normalize())
}
