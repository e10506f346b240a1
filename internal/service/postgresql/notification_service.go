package service

import (
	"errors"

	entity "campusx/internal/domain"
	mongorepo "campusx/internal/repository/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	notiRepo mongorepo.NotificationRepository
}

func NewNotificationService(notiRepo mongorepo.NotificationRepository) *NotificationService {
	return &NotificationService{notiRepo: notiRepo}
}

type NotificationList struct {
	Notifications []entity.Notification `json:"notifications"`
	Unread        int64                 `json:"unread"`
}

func (s *NotificationService) List(userID uuid.UUID, limit int64) (*NotificationList, error) {
	notifications, err := s.notiRepo.GetByUserID(userID.String(), limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notiRepo.CountUnread(userID.String())
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: notifications, Unread: unread}, nil
}

func (s *NotificationService) MarkRead(userID uuid.UUID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotificationNotFound
	}
	err = s.notiRepo.MarkRead(oid, userID.String())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotificationNotFound
	}
	return err
}
