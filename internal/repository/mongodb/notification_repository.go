package mongodb

import (
	"context"
	"fmt"
	"time"

	entity "campusx/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DatabaseName            = "campusx"
	CollectionNotifications = "notifications"
)

type NotificationRepository interface {
	SaveNotification(doc *entity.Notification) error
	GetByUserID(userID string, limit int64) ([]entity.Notification, error)
	MarkRead(id primitive.ObjectID, userID string) error
	CountUnread(userID string) (int64, error)
}

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(client *mongo.Client) NotificationRepository {
	db := client.Database(DatabaseName)
	return &notificationRepository{
		collection: db.Collection(CollectionNotifications),
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (r *notificationRepository) SaveNotification(doc *entity.Notification) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByUserID(userID string, limit int64) ([]entity.Notification, error) {
	ctx, cancel := opContext()
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead only updates documents belonging to userID so one user cannot
// mark another user's notification.
func (r *notificationRepository) MarkRead(id primitive.ObjectID, userID string) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	ctx, cancel := opContext()
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
