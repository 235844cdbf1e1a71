package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clinicdesk/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionName = "appointments"

// FirestoreAppointmentRepo implements Store on a Firestore collection.
type FirestoreAppointmentRepo struct {
	coll *firestore.CollectionRef
}

// NewFirestoreAppointmentRepo creates a Store backed by the "appointments" collection.
func NewFirestoreAppointmentRepo(client *firestore.Client) Store {
	return &FirestoreAppointmentRepo{coll: client.Collection(collectionName)}
}

func (r *FirestoreAppointmentRepo) Create(ctx context.Context, appt models.Appointment) (string, error) {
	ref, _, err := r.coll.Add(ctx, appt)
	if err != nil {
		return "", fmt.Errorf("error creating appointment: %w", err)
	}
	return ref.ID, nil
}

func (r *FirestoreAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	appt, err := decodeSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *FirestoreAppointmentRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		if path == "createdAt" {
			continue
		}
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := r.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreAppointmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreAppointmentRepo) List(ctx context.Context, filter Filter) ([]models.Appointment, error) {
	docs, err := r.query(filter).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	return decodeAll(docs)
}

// Subscribe opens a Firestore snapshot listener. Each QuerySnapshot becomes
// one Batch.
func (r *FirestoreAppointmentRepo) Subscribe(ctx context.Context, filter Filter, onBatch func(Batch), onError func(error)) (Unsubscribe, error) {
	if onBatch == nil {
		return nil, errors.New("subscribe: onBatch is required")
	}
	subCtx, cancel := context.WithCancel(ctx)
	it := r.query(filter).Snapshots(subCtx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if subCtx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
					return
				}
				if onError != nil {
					onError(fmt.Errorf("appointment listener: %w", err))
				}
				return
			}
			batch, err := toBatch(snap)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			onBatch(batch)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (r *FirestoreAppointmentRepo) query(filter Filter) firestore.Query {
	q := r.coll.Query
	if filter.Status != "" {
		q = q.Where("status", "==", string(filter.Status))
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

func toBatch(snap *firestore.QuerySnapshot) (Batch, error) {
	batch := Batch{Changes: make([]Change, 0, len(snap.Changes))}
	for _, ch := range snap.Changes {
		appt, err := decodeSnapshot(ch.Doc)
		if err != nil {
			return Batch{}, err
		}
		var kind ChangeKind
		switch ch.Kind {
		case firestore.DocumentAdded:
			kind = ChangeAdded
		case firestore.DocumentModified:
			kind = ChangeModified
		case firestore.DocumentRemoved:
			kind = ChangeRemoved
		}
		batch.Changes = append(batch.Changes, Change{Kind: kind, Appointment: appt})
	}

	docs, err := snap.Documents.GetAll()
	if err != nil {
		return Batch{}, fmt.Errorf("error reading appointment snapshot: %w", err)
	}
	batch.Snapshot, err = decodeAll(docs)
	if err != nil {
		return Batch{}, err
	}
	return batch, nil
}

func decodeAll(docs []*firestore.DocumentSnapshot) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0, len(docs))
	for _, doc := range docs {
		appt, err := decodeSnapshot(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, nil
}

func decodeSnapshot(doc *firestore.DocumentSnapshot) (models.Appointment, error) {
	var appt models.Appointment
	if err := doc.DataTo(&appt); err != nil {
		return models.Appointment{}, fmt.Errorf("error decoding appointment %s: %w", doc.Ref.ID, err)
	}
	appt.ID = doc.Ref.ID
	return appt, nil
}
