package mongodb

import (
	"fmt"

	entity "campusx/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionStatus      = "history_status"
	CollectionActivityLog = "activity_log"
)

type LogRepository interface {
	SaveHistoryStatus(doc *entity.HistoryStatus) error
	SaveActivityLog(doc *entity.ActivityLog) error
}

type logRepository struct {
	statusCollection   *mongo.Collection
	activityCollection *mongo.Collection
}

func NewLogRepository(client *mongo.Client) LogRepository {
	db := client.Database(DatabaseName)
	return &logRepository{
		statusCollection:   db.Collection(CollectionStatus),
		activityCollection: db.Collection(CollectionActivityLog),
	}
}

func (r *logRepository) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.statusCollection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert history status: %w", err)
	}
	return nil
}

func (r *logRepository) SaveActivityLog(doc *entity.ActivityLog) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.activityCollection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}
