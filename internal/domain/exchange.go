package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeStatus is the lifecycle status of an exchange request.
type ExchangeStatus string

const (
	ExchangePending    ExchangeStatus = "pending"
	ExchangeAccepted   ExchangeStatus = "accepted" // legacy alias of in_progress, read-only
	ExchangeInProgress ExchangeStatus = "in_progress"
	ExchangeCompleted  ExchangeStatus = "completed"
	ExchangeCancelled  ExchangeStatus = "cancelled"
	ExchangeRejected   ExchangeStatus = "rejected"
)

func (s ExchangeStatus) String() string {
	return string(s)
}

// Normalize maps the legacy "accepted" alias onto "in_progress" so the rest
// of the code only reasons about canonical statuses. New writes never
// produce "accepted"; it survives only in historical rows.
func (s ExchangeStatus) Normalize() ExchangeStatus {
	if s == ExchangeAccepted {
		return ExchangeInProgress
	}
	return s
}

// ExchangeRole identifies which side of an exchange a user is on.
type ExchangeRole string

const (
	RoleOwner     ExchangeRole = "owner"
	RoleRequester ExchangeRole = "requester"
)

// ExchangeAction is an operation a participant may invoke on an exchange.
type ExchangeAction string

const (
	ActionAccept  ExchangeAction = "accept"
	ActionReject  ExchangeAction = "reject"
	ActionCancel  ExchangeAction = "cancel"
	ActionConfirm ExchangeAction = "confirm"
)

type Exchange struct {
	ID                 uuid.UUID      `db:"id" json:"id"`
	ItemID             uuid.UUID      `db:"item_id" json:"item_id"`
	ItemTitle          string         `db:"item_title" json:"item_title"`
	OwnerID            uuid.UUID      `db:"owner_id" json:"owner_id"`
	RequesterID        uuid.UUID      `db:"requester_id" json:"requester_id"`
	Status             ExchangeStatus `db:"status" json:"status"`
	OwnerConfirmed     bool           `db:"owner_confirmed" json:"owner_confirmed"`
	RequesterConfirmed bool           `db:"requester_confirmed" json:"requester_confirmed"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// RoleOf returns the role the given user plays in this exchange, or false
// when the user is not a party to it.
func (e *Exchange) RoleOf(userID uuid.UUID) (ExchangeRole, bool) {
	switch userID {
	case e.OwnerID:
		return RoleOwner, true
	case e.RequesterID:
		return RoleRequester, true
	}
	return "", false
}

type CreateExchangeInput struct {
	ItemID  string `json:"item_id" binding:"required,uuid"`
	Message string `json:"message"`
}

type RespondExchangeInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

type ConfirmExchangeInput struct {
	Role string `json:"role" binding:"required,oneof=owner requester"`
}
