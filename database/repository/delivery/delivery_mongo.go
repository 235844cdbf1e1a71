package deliveryRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDeliveryRepo struct {
	coll *mongo.Collection
}

func NewMongoDeliveryRepo(db *mongo.Database) DeliveryRepository {
	return &MongoDeliveryRepo{coll: db.Collection(collectionName)}
}

func (r *MongoDeliveryRepo) Create(ctx context.Context, rec models.DeliveryRecord) (string, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("error recording delivery: %w", err)
	}
	return rec.ID, nil
}

func (r *MongoDeliveryRepo) List(ctx context.Context, limit int) ([]models.DeliveryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(normalizeLimit(limit)))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.DeliveryRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding deliveries: %w", err)
	}
	return out, nil
}
