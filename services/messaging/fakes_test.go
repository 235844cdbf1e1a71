package messaging

import (
	"context"
	"errors"
	"sync"

	"clinicdesk/models"
)

type fakeSender struct {
	mu       sync.Mutex
	requests []SendRequest
	failFor  map[Role]error
	demo     bool
}

func (s *fakeSender) Send(_ context.Context, req SendRequest) (*Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if err := s.failFor[req.Role]; err != nil {
		return nil, err
	}
	return &Ack{Success: true, Demo: s.demo, Recipient: req.PhoneNumber}, nil
}

func (s *fakeSender) sent() []SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SendRequest(nil), s.requests...)
}

type memoryDeliveries struct {
	mu      sync.Mutex
	records []models.DeliveryRecord
	err     error
}

func (m *memoryDeliveries) Create(_ context.Context, rec models.DeliveryRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.records = append(m.records, rec)
	return rec.Recipient, nil
}

func (m *memoryDeliveries) List(context.Context, int) ([]models.DeliveryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.DeliveryRecord(nil), m.records...), nil
}

type fakeWhatsApp struct {
	sid  string
	err  error
	sent []string
}

func (f *fakeWhatsApp) SendWhatsApp(_ context.Context, from, to, body string) (string, error) {
	f.sent = append(f.sent, from+"->"+to+":"+body)
	return f.sid, f.err
}

var errRemoteDown = errors.New("remote function unavailable")
