package service

import (
	"errors"
	"fmt"
	"time"

	entity "campusx/internal/domain"
	mongorepo "campusx/internal/repository/mongodb"
	repo "campusx/internal/repository/postgresql"
	"campusx/internal/statemachine"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrItemUnavailable  = errors.New("item is not available for exchange")
	ErrOwnItem          = errors.New("cannot request an exchange for your own item")
	ErrOnlyOwner        = errors.New("only the item owner may respond to this exchange")
	ErrNotParticipant   = errors.New("you are not a party to this exchange")
	ErrRoleMismatch     = errors.New("caller does not match the claimed role")
	ErrInvalidAction    = errors.New("action must be accept or reject")
	ErrCancelNotAllowed = errors.New("only the requester may cancel a pending exchange")
)

// InvalidStateError rejects a confirm attempt from a status that does not
// allow confirmation.
type InvalidStateError struct {
	Status entity.ExchangeStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot confirm an exchange in status %q", e.Status)
}

type RespondResult struct {
	Action entity.ExchangeAction `json:"action"`
	Status entity.ExchangeStatus `json:"status"`
}

type ConfirmResult struct {
	Status    entity.ExchangeStatus `json:"status"`
	Completed bool                  `json:"completed"`
}

// ExchangeDetail pairs an exchange with the caller's role and the actions
// the caller may invoke right now.
type ExchangeDetail struct {
	Exchange       *entity.Exchange        `json:"exchange"`
	Role           entity.ExchangeRole     `json:"role"`
	AllowedActions []entity.ExchangeAction `json:"allowed_actions"`
}

type ExchangeService struct {
	exchangeRepo repo.ExchangeRepository
	itemRepo     repo.ItemRepository
	logRepo      mongorepo.LogRepository
	notifier     Notifier
	log          *zap.SugaredLogger
}

func NewExchangeService(exchangeRepo repo.ExchangeRepository, itemRepo repo.ItemRepository, logRepo mongorepo.LogRepository, notifier Notifier, log *zap.SugaredLogger) *ExchangeService {
	return &ExchangeService{
		exchangeRepo: exchangeRepo,
		itemRepo:     itemRepo,
		logRepo:      logRepo,
		notifier:     notifier,
		log:          log,
	}
}

// pendingNote is one post-commit notification collected while the
// transaction runs. Nothing is dispatched unless the commit succeeds.
type pendingNote struct {
	userID   uuid.UUID
	title    string
	message  string
	notiType string
}

// Create opens a pending exchange for an available item and reserves the
// item in the same transaction.
func (s *ExchangeService) Create(requesterID uuid.UUID, input entity.CreateExchangeInput) (*entity.Exchange, error) {
	itemID, err := uuid.Parse(input.ItemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.OwnerID == requesterID {
		return nil, ErrOwnItem
	}
	if item.Status != entity.ItemAvailable {
		return nil, ErrItemUnavailable
	}

	ex := &entity.Exchange{
		ID:          uuid.New(),
		ItemID:      item.ID,
		ItemTitle:   item.Title,
		OwnerID:     item.OwnerID,
		RequesterID: requesterID,
		Status:      entity.ExchangePending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.exchangeRepo.CreateExchangeTransaction(ex); err != nil {
		switch {
		case errors.Is(err, repo.ErrItemNotFound):
			return nil, ErrItemNotFound
		case errors.Is(err, repo.ErrItemUnavailable):
			return nil, ErrItemUnavailable
		}
		return nil, err
	}

	message := fmt.Sprintf("Someone requested your item '%s'.", ex.ItemTitle)
	if input.Message != "" {
		message += " They say: " + input.Message
	}
	s.notifier.Notify(ex.OwnerID, "New exchange request", message, "exchange_request", ex.ID)
	return ex, nil
}

// Respond applies the owner's accept/reject decision on a pending exchange.
// Authorization and transition validity are decided inside the transaction;
// rejection releases the item back to available in the same atomic unit.
func (s *ExchangeService) Respond(callerID, exchangeID uuid.UUID, action entity.ExchangeAction) (*RespondResult, error) {
	var target entity.ExchangeStatus
	switch action {
	case entity.ActionAccept:
		target = entity.ExchangeInProgress
	case entity.ActionReject:
		target = entity.ExchangeRejected
	default:
		return nil, ErrInvalidAction
	}

	var outbox []pendingNote
	var oldStatus entity.ExchangeStatus

	err := s.exchangeRepo.Transact(exchangeID, func(ex *entity.Exchange, item *entity.Item) error {
		if ex.OwnerID != callerID {
			return ErrOnlyOwner
		}
		oldStatus = ex.Status
		current := ex.Status.Normalize()
		if err := statemachine.ValidateTransition(current, target); err != nil {
			return err
		}
		if current == target {
			// idempotent re-apply, nothing to change
			return nil
		}

		ex.Status = target
		switch action {
		case entity.ActionAccept:
			// confirmation state restarts cleanly with each new phase
			ex.OwnerConfirmed = false
			ex.RequesterConfirmed = false
			outbox = append(outbox, pendingNote{
				userID:   ex.RequesterID,
				title:    "Exchange accepted",
				message:  fmt.Sprintf("The owner accepted your request for '%s'. Arrange the handover and confirm when done.", ex.ItemTitle),
				notiType: "exchange_response",
			})
		case entity.ActionReject:
			item.Status = entity.ItemAvailable
			outbox = append(outbox, pendingNote{
				userID:   ex.RequesterID,
				title:    "Exchange rejected",
				message:  fmt.Sprintf("The owner rejected your request for '%s'.", ex.ItemTitle),
				notiType: "exchange_response",
			})
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}

	s.recordHistory(exchangeID, callerID, oldStatus, target)
	s.dispatch(exchangeID, outbox)
	return &RespondResult{Action: action, Status: target}, nil
}

// Confirm marks the caller's side of an in-progress exchange as done. When
// the second side confirms, the exchange and its item complete together in
// one transaction, so two racing confirms cannot both apply the completion.
func (s *ExchangeService) Confirm(callerID, exchangeID uuid.UUID, role entity.ExchangeRole) (*ConfirmResult, error) {
	var outbox []pendingNote
	var oldStatus entity.ExchangeStatus
	result := &ConfirmResult{}

	err := s.exchangeRepo.Transact(exchangeID, func(ex *entity.Exchange, item *entity.Item) error {
		oldStatus = ex.Status
		if ex.Status.Normalize() != entity.ExchangeInProgress {
			return &InvalidStateError{Status: ex.Status}
		}

		switch role {
		case entity.RoleOwner:
			if ex.OwnerID != callerID {
				return ErrRoleMismatch
			}
			ex.OwnerConfirmed = true
		case entity.RoleRequester:
			if ex.RequesterID != callerID {
				return ErrRoleMismatch
			}
			ex.RequesterConfirmed = true
		default:
			return ErrRoleMismatch
		}

		if ex.OwnerConfirmed && ex.RequesterConfirmed {
			ex.Status = entity.ExchangeCompleted
			item.Status = entity.ItemCompleted
			result.Completed = true
			for _, uid := range []uuid.UUID{ex.OwnerID, ex.RequesterID} {
				outbox = append(outbox, pendingNote{
					userID:   uid,
					title:    "Exchange completed",
					message:  fmt.Sprintf("The exchange for '%s' is complete.", ex.ItemTitle),
					notiType: "exchange_confirm",
				})
			}
		} else {
			other := ex.OwnerID
			if role == entity.RoleOwner {
				other = ex.RequesterID
			}
			outbox = append(outbox, pendingNote{
				userID:   other,
				title:    "Waiting for your confirmation",
				message:  fmt.Sprintf("The other party confirmed the exchange for '%s'. Confirm your side to complete it.", ex.ItemTitle),
				notiType: "exchange_confirm",
			})
		}
		result.Status = ex.Status
		return nil
	})
	if err != nil {
		return nil, s.translate(err)
	}

	if result.Completed {
		s.recordHistory(exchangeID, callerID, oldStatus, entity.ExchangeCompleted)
	}
	s.dispatch(exchangeID, outbox)
	return result, nil
}

// Cancel withdraws an exchange. While pending only the requester may cancel
// (the owner rejects instead); once in progress either party may. The item
// is released in the same transaction.
func (s *ExchangeService) Cancel(callerID, exchangeID uuid.UUID) (entity.ExchangeStatus, error) {
	var outbox []pendingNote
	var oldStatus entity.ExchangeStatus

	err := s.exchangeRepo.Transact(exchangeID, func(ex *entity.Exchange, item *entity.Item) error {
		role, ok := ex.RoleOf(callerID)
		if !ok {
			return ErrNotParticipant
		}
		oldStatus = ex.Status
		current := ex.Status.Normalize()
		if current == entity.ExchangePending && role != entity.RoleRequester {
			return ErrCancelNotAllowed
		}
		if err := statemachine.ValidateTransition(current, entity.ExchangeCancelled); err != nil {
			return err
		}
		if current == entity.ExchangeCancelled {
			return nil
		}

		ex.Status = entity.ExchangeCancelled
		item.Status = entity.ItemAvailable

		other := ex.OwnerID
		if role == entity.RoleOwner {
			other = ex.RequesterID
		}
		outbox = append(outbox, pendingNote{
			userID:   other,
			title:    "Exchange cancelled",
			message:  fmt.Sprintf("The exchange for '%s' was cancelled.", ex.ItemTitle),
			notiType: "exchange_response",
		})
		return nil
	})
	if err != nil {
		return "", s.translate(err)
	}

	s.recordHistory(exchangeID, callerID, oldStatus, entity.ExchangeCancelled)
	s.dispatch(exchangeID, outbox)
	return entity.ExchangeCancelled, nil
}

// GetDetail returns the exchange together with the actions the caller may
// invoke, for client-side pre-validation.
func (s *ExchangeService) GetDetail(callerID, exchangeID uuid.UUID) (*ExchangeDetail, error) {
	ex, err := s.exchangeRepo.GetByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, ErrExchangeNotFound
	}
	role, ok := ex.RoleOf(callerID)
	if !ok {
		return nil, ErrNotParticipant
	}
	return &ExchangeDetail{
		Exchange:       ex,
		Role:           role,
		AllowedActions: statemachine.AllowedActions(ex.Status, role),
	}, nil
}

func (s *ExchangeService) ListMine(requesterID uuid.UUID) ([]entity.Exchange, error) {
	return s.exchangeRepo.GetByRequesterID(requesterID)
}

func (s *ExchangeService) ListInbox(ownerID uuid.UUID) ([]entity.Exchange, error) {
	return s.exchangeRepo.GetByOwnerID(ownerID)
}

func (s *ExchangeService) translate(err error) error {
	if errors.Is(err, repo.ErrExchangeNotFound) {
		return ErrExchangeNotFound
	}
	if errors.Is(err, repo.ErrItemNotFound) {
		return ErrItemNotFound
	}
	return err
}

func (s *ExchangeService) recordHistory(exchangeID, changedBy uuid.UUID, oldStatus, newStatus entity.ExchangeStatus) {
	if oldStatus.Normalize() == newStatus.Normalize() {
		return
	}
	history := &entity.HistoryStatus{
		ID:          primitive.NewObjectID(),
		RelatedID:   exchangeID.String(),
		RelatedType: "exchange",
		OldStatus:   oldStatus.String(),
		NewStatus:   newStatus.String(),
		ChangedBy:   changedBy.String(),
		Timestamp:   time.Now(),
	}
	if err := s.logRepo.SaveHistoryStatus(history); err != nil {
		s.log.Warnw("failed to save status history", "exchange_id", exchangeID, "error", err)
	}
}

// dispatch runs after a successful commit. Notification failures are logged
// and swallowed; the operation already succeeded.
func (s *ExchangeService) dispatch(exchangeID uuid.UUID, outbox []pendingNote) {
	for _, note := range outbox {
		s.notifier.Notify(note.userID, note.title, note.message, note.notiType, exchangeID)
	}
}
