package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"

	"go.uber.org/zap"
)

// DefaultFreshWindow is how long after creation a Pending appointment still
// raises a new-appointment alert.
const DefaultFreshWindow = 5 * time.Second

var ErrAlreadyStarted = errors.New("live sync already started")

// Notifier receives each fresh appointment.
type Notifier interface {
	NotifyNewAppointment(ctx context.Context, appt models.Appointment)
}

// IsFresh reports whether appt counts as just booked at now. A zero
// CreatedAt is never fresh.
func IsFresh(appt models.Appointment, now time.Time, window time.Duration) bool {
	if appt.Status != models.StatusPending || appt.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(appt.CreatedAt) < window
}

// LiveSync keeps an in-memory, createdAt-descending view of every appointment
// in step with the store's live feed. Only the feed callback writes the view.
type LiveSync struct {
	feed        appointmentRepo.Feed
	notifier    Notifier
	freshWindow time.Duration
	logger      *zap.Logger
	now         func() time.Time

	mu           sync.RWMutex
	appointments []models.Appointment
	loading      bool
	lastErr      error
	unsubscribe  appointmentRepo.Unsubscribe
	active       bool
	ctx          context.Context
}

func NewLiveSync(feed appointmentRepo.Feed, notifier Notifier, freshWindow time.Duration, logger *zap.Logger) *LiveSync {
	if freshWindow <= 0 {
		freshWindow = DefaultFreshWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiveSync{
		feed:        feed,
		notifier:    notifier,
		freshWindow: freshWindow,
		logger:      logger,
		now:         time.Now,
		loading:     true,
	}
}

// Start opens the single feed subscription.
func (s *LiveSync) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.active = true
	s.loading = true
	s.lastErr = nil
	s.ctx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	unsubscribe, err := s.feed.Subscribe(ctx, appointmentRepo.Filter{}, s.handleBatch, s.handleError)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.active = false
		s.loading = false
		s.lastErr = err
		return fmt.Errorf("LiveSync.Start: %w", err)
	}
	s.unsubscribe = unsubscribe
	s.logger.Info("appointment live sync started", zap.Duration("freshWindow", s.freshWindow))
	return nil
}

// Stop cancels the subscription. Calling it again is a no-op.
func (s *LiveSync) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.active = false
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		s.logger.Info("appointment live sync stopped")
	}
}

// Appointments returns a copy of the current view.
func (s *LiveSync) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Loading is true until the first feed event or a subscription error.
func (s *LiveSync) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the subscription error, if any.
func (s *LiveSync) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *LiveSync) handleBatch(batch appointmentRepo.Batch) {
	now := s.now()
	var fresh []models.Appointment
	for _, ch := range batch.Changes {
		if ch.Kind == appointmentRepo.ChangeAdded && IsFresh(ch.Appointment, now, s.freshWindow) {
			fresh = append(fresh, ch.Appointment)
		}
	}

	snapshot := make([]models.Appointment, len(batch.Snapshot))
	copy(snapshot, batch.Snapshot)

	s.mu.Lock()
	s.appointments = snapshot
	s.loading = false
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	for _, appt := range fresh {
		if s.notifier != nil {
			s.notifier.NotifyNewAppointment(ctx, appt)
		}
	}
}

func (s *LiveSync) handleError(err error) {
	s.logger.Error("appointment live sync failed, keeping last known list", zap.Error(err))
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}
