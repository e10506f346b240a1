package statemachine

import (
	"fmt"
	"strings"

	entity "campusx/internal/domain"
)

// transitionTable is the authoritative state machine definition. The legacy
// "accepted" status stays reachable so historical rows can still be acted
// on; new writes only ever produce canonical statuses.
var transitionTable = map[entity.ExchangeStatus][]entity.ExchangeStatus{
	entity.ExchangePending:    {entity.ExchangeInProgress, entity.ExchangeRejected, entity.ExchangeCancelled},
	entity.ExchangeInProgress: {entity.ExchangeCompleted, entity.ExchangeCancelled},
	entity.ExchangeAccepted:   {entity.ExchangeInProgress, entity.ExchangeCancelled},
	entity.ExchangeCompleted:  {},
	entity.ExchangeCancelled:  {},
	entity.ExchangeRejected:   {},
}

// NextStatuses returns all statuses reachable from the given one.
func NextStatuses(status entity.ExchangeStatus) []entity.ExchangeStatus {
	next := transitionTable[status]
	out := make([]entity.ExchangeStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(status entity.ExchangeStatus) bool {
	return len(transitionTable[status]) == 0
}

// IsValidTransition reports whether current -> proposed is in the table.
// A self-transition is always valid (idempotent re-apply).
func IsValidTransition(current, proposed entity.ExchangeStatus) bool {
	if current == proposed {
		return true
	}
	for _, s := range transitionTable[current] {
		if s == proposed {
			return true
		}
	}
	return false
}

// TransitionError describes a rejected transition. Its message names the
// current status and the allowed set so it can be surfaced to users verbatim.
type TransitionError struct {
	Current  entity.ExchangeStatus
	Proposed entity.ExchangeStatus
	Terminal bool
}

func (e *TransitionError) Error() string {
	if e.Terminal {
		return fmt.Sprintf("exchange is %s: no further transitions are allowed", e.Current)
	}
	return fmt.Sprintf("cannot transition exchange from %s to %s; allowed: %s",
		e.Current, e.Proposed, describeNext(e.Current))
}

func describeNext(status entity.ExchangeStatus) string {
	next := transitionTable[status]
	if len(next) == 0 {
		return "none (terminal)"
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// ValidateTransition decides whether current -> proposed is legal. Pure, no
// I/O; the single source of truth for every mutating operation and for UI
// pre-validation.
func ValidateTransition(current, proposed entity.ExchangeStatus) error {
	if current == proposed {
		return nil
	}
	if IsTerminal(current) {
		return &TransitionError{Current: current, Proposed: proposed, Terminal: true}
	}
	if !IsValidTransition(current, proposed) {
		return &TransitionError{Current: current, Proposed: proposed}
	}
	return nil
}

// AllowedActions returns the actions the given participant may invoke right
// now. Advisory for clients; the operations re-check authority server-side.
func AllowedActions(status entity.ExchangeStatus, role entity.ExchangeRole) []entity.ExchangeAction {
	switch status.Normalize() {
	case entity.ExchangePending:
		if role == entity.RoleOwner {
			return []entity.ExchangeAction{entity.ActionAccept, entity.ActionReject}
		}
		if role == entity.RoleRequester {
			return []entity.ExchangeAction{entity.ActionCancel}
		}
	case entity.ExchangeInProgress:
		if role == entity.RoleOwner || role == entity.RoleRequester {
			return []entity.ExchangeAction{entity.ActionCancel, entity.ActionConfirm}
		}
	}
	return nil
}
