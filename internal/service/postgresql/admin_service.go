package service

import (
	"errors"
	"time"

	entity "campusx/internal/domain"
	mongorepo "campusx/internal/repository/mongodb"
	repo "campusx/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrInvalidModeration = errors.New("moderation action must be hide or restore")

type AdminService struct {
	userRepo repo.UserRepository
	itemRepo repo.ItemRepository
	logRepo  mongorepo.LogRepository
	log      *zap.SugaredLogger
}

func NewAdminService(userRepo repo.UserRepository, itemRepo repo.ItemRepository, logRepo mongorepo.LogRepository, log *zap.SugaredLogger) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		itemRepo: itemRepo,
		logRepo:  logRepo,
		log:      log,
	}
}

func (s *AdminService) ListUsers(limit, offset int) ([]entity.User, error) {
	return s.userRepo.ListUsers(limit, offset)
}

func (s *AdminService) SetUserActive(adminID, userID uuid.UUID, active bool) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.SetActive(userID, active); err != nil {
		return err
	}

	action := "block_user"
	if active {
		action = "unblock_user"
	}
	s.recordActivity(adminID, action, "users", userID.String())
	return nil
}

// ModerateItem hides or restores a listing. Items mid-exchange are left to
// the exchange lifecycle; moderation only toggles available/hidden.
func (s *AdminService) ModerateItem(adminID, itemID uuid.UUID, action string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status == entity.ItemDeleted {
		return nil, ErrItemNotFound
	}

	var target entity.ItemStatus
	switch action {
	case "hide":
		target = entity.ItemHidden
	case "restore":
		target = entity.ItemAvailable
	default:
		return nil, ErrInvalidModeration
	}
	if item.Status == entity.ItemPending || item.Status == entity.ItemCompleted {
		return nil, ErrItemLocked
	}

	if err := s.itemRepo.UpdateStatus(itemID, target); err != nil {
		return nil, err
	}
	item.Status = target

	s.recordActivity(adminID, action+"_item", "items", itemID.String())
	return item, nil
}

func (s *AdminService) recordActivity(adminID uuid.UUID, action, module, targetID string) {
	doc := &entity.ActivityLog{
		ID:        primitive.NewObjectID(),
		UserID:    adminID.String(),
		Action:    action,
		Module:    module,
		TargetID:  targetID,
		CreatedAt: time.Now(),
	}
	if err := s.logRepo.SaveActivityLog(doc); err != nil {
		s.log.Warnw("failed to save activity log", "admin_id", adminID, "action", action, "error", err)
	}
}
