package service

import (
	"errors"
	"time"

	entity "campusx/internal/domain"
	mongorepo "campusx/internal/repository/mongodb"
	repo "campusx/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrChatClosed = errors.New("chat is closed for this exchange")

type ChatService struct {
	exchangeRepo repo.ExchangeRepository
	messageRepo  mongorepo.MessageRepository
	notifier     Notifier
}

func NewChatService(exchangeRepo repo.ExchangeRepository, messageRepo mongorepo.MessageRepository, notifier Notifier) *ChatService {
	return &ChatService{
		exchangeRepo: exchangeRepo,
		messageRepo:  messageRepo,
		notifier:     notifier,
	}
}

// SendMessage posts a chat message inside an exchange conversation. Only the
// two participants may write, and only while the exchange is still open.
func (s *ChatService) SendMessage(callerID, exchangeID uuid.UUID, text string) (*entity.Message, error) {
	ex, role, err := s.loadParticipant(callerID, exchangeID)
	if err != nil {
		return nil, err
	}
	switch ex.Status.Normalize() {
	case entity.ExchangePending, entity.ExchangeInProgress:
	default:
		return nil, ErrChatClosed
	}

	msg := &entity.Message{
		ID:         primitive.NewObjectID(),
		ExchangeID: exchangeID.String(),
		SenderID:   callerID.String(),
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.messageRepo.SaveMessage(msg); err != nil {
		return nil, err
	}

	other := ex.OwnerID
	if role == entity.RoleOwner {
		other = ex.RequesterID
	}
	s.notifier.Notify(other, "New message",
		"You have a new message about '"+ex.ItemTitle+"'.", "new_message", exchangeID)
	return msg, nil
}

func (s *ChatService) ListMessages(callerID, exchangeID uuid.UUID, limit int64) ([]entity.Message, error) {
	if _, _, err := s.loadParticipant(callerID, exchangeID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByExchangeID(exchangeID.String(), limit)
}

func (s *ChatService) loadParticipant(callerID, exchangeID uuid.UUID) (*entity.Exchange, entity.ExchangeRole, error) {
	ex, err := s.exchangeRepo.GetByID(exchangeID)
	if err != nil {
		return nil, "", err
	}
	if ex == nil {
		return nil, "", ErrExchangeNotFound
	}
	role, ok := ex.RoleOf(callerID)
	if !ok {
		return nil, "", ErrNotParticipant
	}
	return ex, role, nil
}
