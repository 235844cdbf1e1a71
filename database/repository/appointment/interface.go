package appointmentRepo

import (
	"context"
	"errors"

	"clinicdesk/models"
)

// ErrNotFound is returned when no appointment has the requested id.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository is the durable appointment store.
type AppointmentRepository interface {
	Create(ctx context.Context, appt models.Appointment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// Update writes the given field paths and refreshes updatedAt.
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// List returns appointments ordered by createdAt, newest first.
	List(ctx context.Context, filter Filter) ([]models.Appointment, error)
}

// Filter narrows a list or a subscription. The zero value selects everything.
type Filter struct {
	Status models.AppointmentStatus
	Limit  int
}

// ChangeKind tags a per-document entry of a feed event.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeModified
	ChangeRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	}
	return "unknown"
}

// Change is one document entry of a feed event.
type Change struct {
	Kind        ChangeKind
	Appointment models.Appointment
}

// Batch is one feed event: the changes since the previous event plus the
// full current result set ordered by createdAt desc.
type Batch struct {
	Changes  []Change
	Snapshot []models.Appointment
}

// Unsubscribe stops a subscription. Safe to call more than once.
type Unsubscribe func()

// Feed is the live-query side of the store. onBatch is called sequentially,
// in commit order, from a single goroutine per subscription. onError is
// called at most once, after which no further batches arrive.
type Feed interface {
	Subscribe(ctx context.Context, filter Filter, onBatch func(Batch), onError func(error)) (Unsubscribe, error)
}

// Store is a repository that also offers a live feed.
type Store interface {
	AppointmentRepository
	Feed
}
