package service

import (
	"time"

	entity "campusx/internal/domain"
	mongorepo "campusx/internal/repository/mongodb"
	repo "campusx/internal/repository/postgresql"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notifier delivers a notification to one user. Implementations are
// fire-and-forget: callers invoke it only after their transaction has
// committed and never see delivery failures.
type Notifier interface {
	Notify(userID uuid.UUID, title, message, notiType string, relatedID uuid.UUID)
}

type notificationDispatcher struct {
	notiRepo mongorepo.NotificationRepository
	userRepo repo.UserRepository
	line     *messaging_api.MessagingApiAPI
	log      *zap.SugaredLogger
}

// NewNotifier writes an in-app notification and, when the user has a linked
// LINE account, pushes the same text over LINE. line may be nil when the
// channel is not configured.
func NewNotifier(notiRepo mongorepo.NotificationRepository, userRepo repo.UserRepository, line *messaging_api.MessagingApiAPI, log *zap.SugaredLogger) Notifier {
	return &notificationDispatcher{
		notiRepo: notiRepo,
		userRepo: userRepo,
		line:     line,
		log:      log,
	}
}

func (d *notificationDispatcher) Notify(userID uuid.UUID, title, message, notiType string, relatedID uuid.UUID) {
	noti := &entity.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID.String(),
		Type:      notiType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID.String(),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := d.notiRepo.SaveNotification(noti); err != nil {
		d.log.Warnw("failed to save notification", "user_id", userID, "error", err)
	}

	if d.line == nil {
		return
	}
	user, err := d.userRepo.GetByID(userID)
	if err != nil {
		d.log.Warnw("failed to load user for LINE push", "user_id", userID, "error", err)
		return
	}
	if user == nil || user.LineUserID == "" {
		return
	}

	_, err = d.line.PushMessage(&messaging_api.PushMessageRequest{
		To: user.LineUserID,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.TextMessage{Text: title + "\n" + message},
		},
	}, "")
	if err != nil {
		d.log.Warnw("failed to push LINE message", "user_id", userID, "error", err)
	}
}
