package mongodb

import (
	"fmt"

	entity "campusx/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionMessages = "messages"

type MessageRepository interface {
	SaveMessage(doc *entity.Message) error
	GetByExchangeID(exchangeID string, limit int64) ([]entity.Message, error)
}

type messageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(client *mongo.Client) MessageRepository {
	db := client.Database(DatabaseName)
	return &messageRepository{
		collection: db.Collection(CollectionMessages),
	}
}

func (r *messageRepository) SaveMessage(doc *entity.Message) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *messageRepository) GetByExchangeID(exchangeID string, limit int64) ([]entity.Message, error) {
	ctx, cancel := opContext()
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"exchange_id": exchangeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}
