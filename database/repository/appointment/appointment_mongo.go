package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clinicdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements Store on a MongoDB collection. The live
// feed uses a change stream, so the server must run as a replica set.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoAppointmentRepo creates a Store backed by the "appointments" collection.
func NewMongoAppointmentRepo(db *mongo.Database) Store {
	repo := &MongoAppointmentRepo{
		coll: db.Collection(collectionName),
		now:  func() time.Time { return time.Now().UTC() },
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt models.Appointment) (string, error) {
	appt.ID = uuid.NewString()
	now := r.now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return "", fmt.Errorf("error creating appointment: %w", err)
	}
	return appt.ID, nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{}
	for path, value := range fields {
		if path == "createdAt" || path == "_id" {
			continue
		}
		set[path] = value
	}
	set["updatedAt"] = r.now()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointmentRepo) List(ctx context.Context, filter Filter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// Subscribe emits the current result set as an all-added batch, then
// re-reads and diffs the result set on every change-stream event.
func (r *MongoAppointmentRepo) Subscribe(ctx context.Context, filter Filter, onBatch func(Batch), onError func(error)) (Unsubscribe, error) {
	if onBatch == nil {
		return nil, errors.New("subscribe: onBatch is required")
	}
	subCtx, cancel := context.WithCancel(ctx)

	// Open the stream before the first read so no write falls in between.
	stream, err := r.coll.Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("error opening appointment change stream: %w", err)
	}

	fail := func(err error) {
		if subCtx.Err() == nil && onError != nil {
			onError(err)
		}
	}

	go func() {
		defer stream.Close(context.Background())

		prev, err := r.List(subCtx, filter)
		if err != nil {
			fail(err)
			return
		}
		onBatch(DiffSnapshots(nil, prev))

		for stream.Next(subCtx) {
			next, err := r.List(subCtx, filter)
			if err != nil {
				fail(err)
				return
			}
			batch := DiffSnapshots(prev, next)
			prev = next
			if len(batch.Changes) == 0 {
				continue
			}
			onBatch(batch)
		}
		if err := stream.Err(); err != nil {
			fail(fmt.Errorf("appointment change stream: %w", err))
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

// DiffSnapshots derives per-document changes between two ordered result
// sets: removals first, then additions and modifications in next's order.
func DiffSnapshots(prev, next []models.Appointment) Batch {
	before := make(map[string]models.Appointment, len(prev))
	for _, a := range prev {
		before[a.ID] = a
	}
	after := make(map[string]struct{}, len(next))
	for _, a := range next {
		after[a.ID] = struct{}{}
	}

	var changes []Change
	for _, a := range prev {
		if _, ok := after[a.ID]; !ok {
			changes = append(changes, Change{Kind: ChangeRemoved, Appointment: a})
		}
	}
	for _, a := range next {
		old, ok := before[a.ID]
		switch {
		case !ok:
			changes = append(changes, Change{Kind: ChangeAdded, Appointment: a})
		case !old.UpdatedAt.Equal(a.UpdatedAt) || old.Status != a.Status || old.AdminNotes != a.AdminNotes:
			changes = append(changes, Change{Kind: ChangeModified, Appointment: a})
		}
	}

	snapshot := make([]models.Appointment, len(next))
	copy(snapshot, next)
	return Batch{Changes: changes, Snapshot: snapshot}
}
