package contentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContentRepo implements ContentRepository on a MongoDB collection.
type MongoContentRepo[T any, PT Entity[T]] struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoContentRepo[T any, PT Entity[T]](db *mongo.Database, collection string) ContentRepository[T] {
	return &MongoContentRepo[T, PT]{
		coll: db.Collection(collection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MongoContentRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", r.coll.Name(), err)
	}
	return items, nil
}

func (r *MongoContentRepo[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching %s/%s: %w", r.coll.Name(), id, err)
	}
	return &item, nil
}

func (r *MongoContentRepo[T, PT]) Create(ctx context.Context, item T) (string, error) {
	id := uuid.NewString()
	PT(&item).SetID(id)
	PT(&item).Stamp(r.now(), true)
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("error creating %s: %w", r.coll.Name(), err)
	}
	return id, nil
}

func (r *MongoContentRepo[T, PT]) Update(ctx context.Context, id string, item T) error {
	PT(&item).Stamp(r.now(), false)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": PT(&item).Fields()})
	if err != nil {
		return fmt.Errorf("error updating %s/%s: %w", r.coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoContentRepo[T, PT]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting %s/%s: %w", r.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoSettingsRepo keeps the settings in the document with _id "site".
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) SettingsRepository {
	return &MongoSettingsRepo{coll: db.Collection(settingsCollection)}
}

func (r *MongoSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	return &s, nil
}

func (r *MongoSettingsRepo) Save(ctx context.Context, settings models.SiteSettings) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, settings, opts); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}
