package deliveryRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

type FirestoreDeliveryRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreDeliveryRepo(client *firestore.Client) DeliveryRepository {
	return &FirestoreDeliveryRepo{coll: client.Collection(collectionName)}
}

func (r *FirestoreDeliveryRepo) Create(ctx context.Context, rec models.DeliveryRecord) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	ref, _, err := r.coll.Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("error recording delivery: %w", err)
	}
	return ref.ID, nil
}

func (r *FirestoreDeliveryRepo) List(ctx context.Context, limit int) ([]models.DeliveryRecord, error) {
	docs, err := r.coll.OrderBy("sentAt", firestore.Desc).Limit(normalizeLimit(limit)).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing deliveries: %w", err)
	}
	out := make([]models.DeliveryRecord, 0, len(docs))
	for _, doc := range docs {
		var rec models.DeliveryRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("error decoding delivery %s: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		out = append(out, rec)
	}
	return out, nil
}
