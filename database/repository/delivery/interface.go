package deliveryRepo

import (
	"context"

	"clinicdesk/models"
)

// DeliveryRepository is the append-only audit log of outbound messages.
type DeliveryRepository interface {
	Create(ctx context.Context, rec models.DeliveryRecord) (string, error)
	// List returns the newest records first. limit <= 0 means DefaultListLimit.
	List(ctx context.Context, limit int) ([]models.DeliveryRecord, error)
}

const (
	collectionName   = "notifications"
	DefaultListLimit = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
