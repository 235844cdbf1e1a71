package contentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreContentRepo implements ContentRepository on a Firestore collection.
type FirestoreContentRepo[T any, PT Entity[T]] struct {
	coll *firestore.CollectionRef
	now  func() time.Time
}

func NewFirestoreContentRepo[T any, PT Entity[T]](client *firestore.Client, collection string) ContentRepository[T] {
	return &FirestoreContentRepo[T, PT]{
		coll: client.Collection(collection),
		now:  time.Now,
	}
}

func (r *FirestoreContentRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	docs, err := r.coll.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", r.coll.ID, err)
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("error decoding %s/%s: %w", r.coll.ID, doc.Ref.ID, err)
		}
		PT(&item).SetID(doc.Ref.ID)
		items = append(items, item)
	}
	return items, nil
}

func (r *FirestoreContentRepo[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	doc, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching %s/%s: %w", r.coll.ID, id, err)
	}
	var item T
	if err := doc.DataTo(&item); err != nil {
		return nil, fmt.Errorf("error decoding %s/%s: %w", r.coll.ID, id, err)
	}
	PT(&item).SetID(doc.Ref.ID)
	return &item, nil
}

func (r *FirestoreContentRepo[T, PT]) Create(ctx context.Context, item T) (string, error) {
	PT(&item).Stamp(r.now(), true)
	ref, _, err := r.coll.Add(ctx, item)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %w", r.coll.ID, err)
	}
	return ref.ID, nil
}

func (r *FirestoreContentRepo[T, PT]) Update(ctx context.Context, id string, item T) error {
	PT(&item).Stamp(r.now(), false)
	fields := PT(&item).Fields()
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if _, err := r.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("error updating %s/%s: %w", r.coll.ID, id, err)
	}
	return nil
}

func (r *FirestoreContentRepo[T, PT]) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("error deleting %s/%s: %w", r.coll.ID, id, err)
	}
	return nil
}

// FirestoreSettingsRepo keeps the settings in the settings/site document.
type FirestoreSettingsRepo struct {
	doc *firestore.DocumentRef
}

func NewFirestoreSettingsRepo(client *firestore.Client) SettingsRepository {
	return &FirestoreSettingsRepo{doc: client.Collection(settingsCollection).Doc(settingsDocID)}
}

func (r *FirestoreSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	snap, err := r.doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	var s models.SiteSettings
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	return &s, nil
}

func (r *FirestoreSettingsRepo) Save(ctx context.Context, settings models.SiteSettings) error {
	if _, err := r.doc.Set(ctx, settings); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}
