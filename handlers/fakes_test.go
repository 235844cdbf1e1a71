package handlers

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	contentRepo "clinicdesk/database/repository/content"
	"clinicdesk/models"
	"clinicdesk/services/appointment"
	"clinicdesk/services/messaging"
	"clinicdesk/services/storage"
)

type sentMessage struct {
	id     string
	intent messaging.Intent
	at     time.Time
}

// fakeAppointments is a scriptable AppointmentService.
type fakeAppointments struct {
	mu       sync.Mutex
	items    map[string]*models.Appointment
	bookErr  error
	messages []sentMessage
}

func newFakeAppointments(items ...models.Appointment) *fakeAppointments {
	f := &fakeAppointments{items: map[string]*models.Appointment{}}
	for i := range items {
		a := items[i]
		f.items[a.ID] = &a
	}
	return f
}

func (f *fakeAppointments) Book(_ context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	a := req.ToAppointment(models.SourceBooking)
	return f.add(a), nil
}

func (f *fakeAppointments) SubmitContact(_ context.Context, msg models.ContactMessage) (*models.Appointment, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return f.add(msg.ToAppointment()), nil
}

func (f *fakeAppointments) CreateByStaff(_ context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	return f.add(req.ToAppointment(models.SourceStaff)), nil
}

func (f *fakeAppointments) add(a models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = "appt-" + strconv.Itoa(len(f.items)+1)
	f.items[a.ID] = &a
	out := a
	return &out
}

func (f *fakeAppointments) List(_ context.Context, filter appointmentRepo.Filter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.items {
		if filter.Status == "" || a.Status == filter.Status {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAppointments) Get(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAppointments) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	a, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanTransition(a.Status, status) {
		return nil, appointment.ErrInvalidTransition
	}
	f.mu.Lock()
	f.items[id].Status = status
	f.mu.Unlock()
	return f.Get(ctx, id)
}

func (f *fakeAppointments) UpdateNotes(ctx context.Context, id, notes string) (*models.Appointment, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.items[id].AdminNotes = notes
	f.mu.Unlock()
	return f.Get(ctx, id)
}

func (f *fakeAppointments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return appointment.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAppointments) SendMessage(ctx context.Context, id string, intent messaging.Intent) error {
	return f.ScheduleMessage(ctx, id, intent, time.Time{})
}

func (f *fakeAppointments) ScheduleMessage(ctx context.Context, id string, intent messaging.Intent, at time.Time) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{id: id, intent: intent, at: at})
	return nil
}

type fakeLive struct {
	list    []models.Appointment
	loading bool
}

func (f fakeLive) Appointments() []models.Appointment {
	return append([]models.Appointment(nil), f.list...)
}

func (f fakeLive) Loading() bool { return f.loading }

// memoryServices is a ContentRepository for models.Service.
type memoryServices struct {
	items map[string]models.Service
	next  int
}

func newMemoryServices() *memoryServices {
	return &memoryServices{items: map[string]models.Service{}}
}

func (m *memoryServices) List(context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, contentRepo.ErrNotFound
	}
	return &s, nil
}

func (m *memoryServices) Create(_ context.Context, item models.Service) (string, error) {
	m.next++
	item.ID = "svc-" + strconv.Itoa(m.next)
	m.items[item.ID] = item
	return item.ID, nil
}

func (m *memoryServices) Update(_ context.Context, id string, item models.Service) error {
	old, ok := m.items[id]
	if !ok {
		return contentRepo.ErrNotFound
	}
	item.ID, item.CreatedAt = id, old.CreatedAt
	m.items[id] = item
	return nil
}

func (m *memoryServices) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return contentRepo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memorySettings struct {
	stored *models.SiteSettings
}

func (m *memorySettings) Get(context.Context) (*models.SiteSettings, error) {
	if m.stored == nil {
		return nil, contentRepo.ErrNotFound
	}
	s := *m.stored
	return &s, nil
}

func (m *memorySettings) Save(_ context.Context, s models.SiteSettings) error {
	m.stored = &s
	return nil
}

type fakeStorage struct {
	folder string
	body   string
	err    error
}

func (f *fakeStorage) UploadImage(_ context.Context, file io.Reader, folder string) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(file)
	f.folder, f.body = folder, string(data)
	return &storage.UploadResult{URL: "https://res.cloudinary.com/demo/" + folder + "/x.png", PublicID: "clinicdesk/" + folder + "/x"}, nil
}

func (f *fakeStorage) DeleteImage(context.Context, string) error { return f.err }

type fakeSender struct {
	reqs []messaging.SendRequest
	err  error
}

func (f *fakeSender) Send(_ context.Context, req messaging.SendRequest) (*messaging.Ack, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &messaging.Ack{Success: true, Demo: true, Message: "Demo WhatsApp notification logged for " + string(req.Role), Recipient: req.PhoneNumber}, nil
}

type memoryDeliveries struct {
	records []models.DeliveryRecord
	limit   int
}

func (m *memoryDeliveries) Create(_ context.Context, rec models.DeliveryRecord) (string, error) {
	m.records = append(m.records, rec)
	return strconv.Itoa(len(m.records)), nil
}

func (m *memoryDeliveries) List(_ context.Context, limit int) ([]models.DeliveryRecord, error) {
	m.limit = limit
	return m.records, nil
}
