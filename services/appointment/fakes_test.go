package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/services/messaging"
)

var errStoreDown = errors.New("store unavailable")

type memoryRepo struct {
	mu        sync.Mutex
	items     map[string]models.Appointment
	seq       int
	createErr error
	now       func() time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]models.Appointment{}, now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, appt models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	appt.ID = fmt.Sprintf("appt-%d", r.seq)
	appt.CreatedAt = r.now()
	appt.UpdatedAt = appt.CreatedAt
	r.items[appt.ID] = appt
	return appt.ID, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &appt, nil
}

func (r *memoryRepo) Update(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.items[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if v, ok := fields["status"].(string); ok {
		appt.Status = models.AppointmentStatus(v)
	}
	if v, ok := fields["adminNotes"].(string); ok {
		appt.AdminNotes = v
	}
	appt.UpdatedAt = r.now()
	r.items[id] = appt
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) List(_ context.Context, filter appointmentRepo.Filter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.items {
		if filter.Status == "" || a.Status == filter.Status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) put(appt models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[appt.ID] = appt
}

type fakeFeed struct {
	mu           sync.Mutex
	onBatch      func(appointmentRepo.Batch)
	onError      func(error)
	subscribes   int
	unsubscribes int
	err          error
}

func (f *fakeFeed) Subscribe(_ context.Context, _ appointmentRepo.Filter, onBatch func(appointmentRepo.Batch), onError func(error)) (appointmentRepo.Unsubscribe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.subscribes++
	f.onBatch = onBatch
	f.onError = onError
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.unsubscribes++
			f.mu.Unlock()
		})
	}, nil
}

func (f *fakeFeed) emit(b appointmentRepo.Batch) {
	f.mu.Lock()
	cb := f.onBatch
	f.mu.Unlock()
	cb(b)
}

func (f *fakeFeed) fail(err error) {
	f.mu.Lock()
	cb := f.onError
	f.mu.Unlock()
	cb(err)
}

type recordingNotifier struct {
	mu    sync.Mutex
	names []string
}

func (n *recordingNotifier) NotifyNewAppointment(_ context.Context, appt models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.names = append(n.names, appt.Name)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.names)
}

type publishedEvent struct {
	Event messaging.Event
	At    time.Time
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev messaging.Event) error {
	return p.PublishAt(context.Background(), ev, time.Time{})
}

func (p *recordingPublisher) PublishAt(_ context.Context, ev messaging.Event, at time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Event: ev, At: at})
	return nil
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type capturingSender struct {
	mu       sync.Mutex
	requests []messaging.SendRequest
	err      error
}

func (s *capturingSender) Send(_ context.Context, req messaging.SendRequest) (*messaging.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &messaging.Ack{Success: true, Recipient: req.PhoneNumber}, nil
}
